package normalizer

import (
	"strconv"
	"strings"

	channels "channel-metrics-service/internal/channels/core/domain"
	"channel-metrics-service/internal/ingest/core/domain"
)

const (
	mxitDate          = "Date"
	mxitUserID        = "UserID"
	mxitNick          = "Nick"
	mxitEmail         = "Mxit Email"
	mxitOptionalEmail = "Enter your email address (optional). Don't have an email address? Use your mxit address (mxitid@mxit.im)"
	mxitName          = "Enter your name"
	mxitMobile        = "Enter your mobile number"
)

func mapMxit(r row, ch channels.Channel, defaultCountryCode string) (domain.Record, error) {
	if err := r.requireAll(mxitDate, mxitUserID, mxitNick, mxitEmail, mxitOptionalEmail); err != nil {
		return domain.Record{}, err
	}

	ts, err := parseDate(r.optional(mxitDate))
	if err != nil {
		return domain.Record{}, err
	}

	uid, _ := r.get(mxitUserID)

	email := r.optional(mxitOptionalEmail)
	if email == "" {
		email = r.optional(mxitEmail)
	}

	return domain.Record{
		SourceTimestamp: ts,
		ChannelID:       ch.ID,
		ChannelUID:      truncate(uid, domain.MaxUIDLength),
		Email:           truncate(email, domain.MaxEmailLength),
		Name:            truncate(r.optional(mxitName), domain.MaxNameLength),
		MSISDN:          truncate(r.optional(mxitMobile), domain.MaxMSISDNLength),
		CountryCode:     defaultCountryCode,
	}, nil
}

const (
	eskimiDate       = "Date"
	eskimiFirstName  = "First name:"
	eskimiSecondName = "Second name:"
	eskimiMobile     = "Mobile number:"
	eskimiEmail      = "u_email"
	eskimiCountry    = "country"
)

func mapEskimi(r row, ch channels.Channel, defaultCountryCode string) (domain.Record, error) {
	if err := r.requireAll(eskimiDate, eskimiFirstName, eskimiSecondName, eskimiMobile); err != nil {
		return domain.Record{}, err
	}

	ts, err := parseDate(r.optional(eskimiDate))
	if err != nil {
		return domain.Record{}, err
	}

	first, _ := r.get(eskimiFirstName)
	second, _ := r.get(eskimiSecondName)
	mobile, _ := r.get(eskimiMobile)

	return domain.Record{
		SourceTimestamp: ts,
		ChannelID:       ch.ID,
		ChannelUID:      truncate(mobile, domain.MaxUIDLength),
		Email:           truncate(r.optional(eskimiEmail), domain.MaxEmailLength),
		Name:            truncate(first+" "+second, domain.MaxNameLength),
		MSISDN:          truncate(mobile, domain.MaxMSISDNLength),
		CountryCode:     countryOrDefault(r, eskimiCountry, defaultCountryCode),
	}, nil
}

const (
	binuDate     = "Date"
	binuAccount  = "Account ID"
	binuFullName = "Please enter your full name."
	binuAge      = "Age"
	binuCity     = "City"
	binuSex      = "Sex"
	binuCountry  = "Country"
)

func mapBinu(r row, ch channels.Channel, defaultCountryCode string) (domain.Record, error) {
	if err := r.requireAll(binuDate, binuAccount, binuFullName, binuAge, binuCity, binuSex); err != nil {
		return domain.Record{}, err
	}

	ts, err := parseDate(r.optional(binuDate))
	if err != nil {
		return domain.Record{}, err
	}

	// free-text ages such as "25+" are stored as unknown
	var age *int
	if n, err := strconv.Atoi(r.optional(binuAge)); err == nil {
		age = &n
	}

	sex, _ := r.get(binuSex)
	// only "M" is male; an empty cell or any other code is female
	gender := domain.GenderFemale
	if strings.TrimSpace(sex) == "M" {
		gender = domain.GenderMale
	}

	account, _ := r.get(binuAccount)
	name, _ := r.get(binuFullName)

	return domain.Record{
		SourceTimestamp: ts,
		ChannelID:       ch.ID,
		ChannelUID:      truncate(account, domain.MaxUIDLength),
		Name:            truncate(name, domain.MaxNameLength),
		CountryCode:     countryOrDefault(r, binuCountry, defaultCountryCode),
		Age:             age,
		Location:        r.optional(binuCity),
		Gender:          gender,
	}, nil
}

func countryOrDefault(r row, column, defaultCountryCode string) string {
	if cc := r.optional(column); cc != "" {
		return cc
	}
	return defaultCountryCode
}
