package domain

// Challenge purposes. Signup and login challenges go to the phone on file,
// reset challenges to the account email. Email confirmation uses a long token
// instead of a 6-digit code but shares the same table.
const (
	PurposeSignup = "signup"
	PurposeLogin  = "login"
	PurposeReset  = "reset"
	PurposeEmail  = "email"
)

// OTPChallenge pairs a destination with a one-time code.
// PK: user_id, SK: purpose. ExpiresAt is a Unix timestamp used as DynamoDB TTL.
type OTPChallenge struct {
	ChallengeID string `json:"id" dynamodbav:"challenge_id"`
	UserID      string `json:"user_id" dynamodbav:"user_id"`
	Purpose     string `json:"purpose" dynamodbav:"purpose"`
	Destination string `json:"destination" dynamodbav:"destination"`
	Code        string `json:"-" dynamodbav:"code"`
	ExpiresAt   int64  `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}
