package scanner

// Kind is the coarse statement classification used by every mode.
type Kind int

const (
	KindOther Kind = iota
	KindCreateTable
	KindInsert
	KindAlter
	KindDrop
)

func (k Kind) String() string {
	switch k {
	case KindCreateTable:
		return "create_table"
	case KindInsert:
		return "insert"
	case KindAlter:
		return "alter"
	case KindDrop:
		return "drop"
	default:
		return "other"
	}
}

// ScanState is the lexical state carried from one physical line to the next.
// It is passed and returned by value; there is no ambient parsing state.
// InString and InComment are never both set.
type ScanState struct {
	InString   bool
	Delim      byte // opening quote when InString: ' " or `
	InComment  bool // inside a /* */ block
	EscapeNext bool // previous char was a backslash inside a string
}

// Statement is one terminator-delimited run of cleaned dump text. Statements
// are transient: produced by the reader, classified, consumed, dropped.
type Statement struct {
	Text  string
	Kind  Kind
	Table string // unquoted identifier for table-affecting kinds, else empty
}
