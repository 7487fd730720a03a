package domain

import "errors"

var ErrUnknownKind = errors.New("unknown channel kind")

// Kind identifies the CSV layout a channel exports. The set is closed.
type Kind int

const (
	KindUnknown Kind = iota
	KindMxit
	KindEskimi
	KindBinu
)

var kindNames = map[Kind]string{
	KindMxit:   "mxit",
	KindEskimi: "eskimi",
	KindBinu:   "binu",
}

// KindOf maps a stored channel name onto its layout. Names outside the
// known set map to KindUnknown.
func KindOf(name string) Kind {
	for k, n := range kindNames {
		if n == name {
			return k
		}
	}
	return KindUnknown
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

type Channel struct {
	ID                 int64
	Name               string
	Kind               Kind
	DefaultCountryCode string
}
