package domain

type HashType string
type SessionStatus string
type AttackMode string
type CharsetName string
type RiskLevel string
type PatternTag string

const (
	//Hash types
	HashMD5    HashType = "MD5"
	HashSHA1   HashType = "SHA1"
	HashSHA256 HashType = "SHA256"
	HashSHA512 HashType = "SHA512"
	HashBCRYPT HashType = "BCRYPT"

	//Session status
	StatusNotStarted SessionStatus = "NOT_STARTED"
	StatusRunning    SessionStatus = "RUNNING"
	StatusCracked    SessionStatus = "CRACKED"
	StatusExhausted  SessionStatus = "EXHAUSTED"

	// Attack modes
	ModeDictionary AttackMode = "dictionary"
	ModeBruteForce AttackMode = "brute_force"
	ModeHybrid     AttackMode = "hybrid"
	ModeAIGuided   AttackMode = "ai_guided"

	// Brute-force charset selectors
	CharsetNameLower        CharsetName = "lowercase"
	CharsetNameUpper        CharsetName = "uppercase"
	CharsetNameDigits       CharsetName = "digits"
	CharsetNameLowerDigits  CharsetName = "lowercase_digits"
	CharsetNameAlphanumeric CharsetName = "alphanumeric"
	CharsetNameFull         CharsetName = "full"

	// Risk levels (password domain uses all five, text domains the top four)
	RiskCritical RiskLevel = "Critical"
	RiskHigh     RiskLevel = "High"
	RiskMedium   RiskLevel = "Medium"
	RiskLow      RiskLevel = "Low"
	RiskVeryLow  RiskLevel = "Very Low"

	// Pattern tags
	TagSequential         PatternTag = "sequential"
	TagRepetitive         PatternTag = "repetitive"
	TagKeyboardWalk       PatternTag = "keyboard_walk"
	TagDatePattern        PatternTag = "date_pattern"
	TagDictionaryWord     PatternTag = "dictionary_word"
	TagCommonSubstitution PatternTag = "common_substitution"
	TagContainsUsername   PatternTag = "contains_username"
	TagContainsName       PatternTag = "contains_name"
)

var (
	CharsetLower   = "abcdefghijklmnopqrstuvwxyz"
	CharsetUpper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	CharsetDigits  = "0123456789"
	CharsetSpecial = "!@#$%^&*()_+-=[]{}|;:,.<>?"
	CharsetAll     = CharsetLower + CharsetUpper + CharsetDigits + CharsetSpecial
)

// Charset resolves a named brute-force charset. Unknown names fall back to
// lowercase+digits, the narrowest set that still covers typical lab targets.
func Charset(name CharsetName) string {
	switch name {
	case CharsetNameLower:
		return CharsetLower
	case CharsetNameUpper:
		return CharsetUpper
	case CharsetNameDigits:
		return CharsetDigits
	case CharsetNameLowerDigits:
		return CharsetLower + CharsetDigits
	case CharsetNameAlphanumeric:
		return CharsetLower + CharsetUpper + CharsetDigits
	case CharsetNameFull:
		return CharsetAll
	default:
		return CharsetLower + CharsetDigits
	}
}

type ScoringError string

const (
	ErrInvalidHash          ScoringError = "INVALID_HASH"
	ErrUnsupportedAlgorithm ScoringError = "UNSUPPORTED_ALGORITHM"
	ErrUnsupportedMode      ScoringError = "UNSUPPORTED_ATTACK_MODE"
	ErrSessionNotFound      ScoringError = "SESSION_NOT_FOUND"
	ErrServiceClosed        ScoringError = "SERVICE_CLOSED"
)

func (e ScoringError) Error() string {
	return string(e)
}
