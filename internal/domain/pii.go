package domain

// PIIKind enumerates detected identifier formats.
type PIIKind string

const (
	PIIKindEmiratesID  PIIKind = "EMIRATES_ID"
	PIIKindPhoneNumber PIIKind = "PHONE_NUMBER"
	PIIKindEmail       PIIKind = "EMAIL"
	PIIKindOther       PIIKind = "OTHER"
)

// PIIFinding is one detected span in the original ticket text. Offsets refer
// to the unredacted input. The matched text exists only transiently inside the
// pipeline and must never be persisted or logged.
type PIIFinding struct {
	Kind  PIIKind
	Match string
	Start int
	End   int
	// AmbiguousWith lists other kinds whose patterns also matched this span;
	// the finding's Kind is the one that won by precedence.
	AmbiguousWith []PIIKind
}
