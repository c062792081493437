package generator

// Generator tuning constants are centralized here to avoid scattering magic numbers.
// All values are expressed as percentages or small caps unless otherwise noted.

const (
	// IntLiteralMax bounds arbitrary INT/BIGINT literals to [-IntLiteralMax, IntLiteralMax].
	IntLiteralMax = 1000
	// FloatLiteralScale and FloatLiteralDiv keep arbitrary doubles at two decimals.
	FloatLiteralScale = 100000
	FloatLiteralDiv   = 100
	// StringLenMax is the maximum length of arbitrary VARCHAR literals.
	StringLenMax = 8
	// BlobLenMax is the maximum length of arbitrary BLOB literals.
	BlobLenMax = 6
	// BoolLiteralTrueProb is the chance of an arbitrary TRUE.
	BoolLiteralTrueProb = 50
	// DateYearMin and DateYearMax bound arbitrary DATE literals.
	DateYearMin = 1970
	DateYearMax = 2037
)

const (
	// BoundStepMax caps how far a bounded value moves past its reference.
	BoundStepMax = 100
	// BoundSuffixMax caps the bytes appended to build a greater string or blob.
	BoundSuffixMax = 3
)

const (
	// CompoundFanoutMax is the maximum number of children per AND/OR.
	CompoundFanoutMax = 3
	// CompoundLabelTrueProb is the chance a mixed compound child is labeled true.
	CompoundLabelTrueProb = 50
)

const (
	// ColumnCountMin is the minimum number of columns in a generated table.
	ColumnCountMin = 1
)

const stringAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
