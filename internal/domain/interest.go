package domain

import "time"

// Interest is a research-field catalog entry offered at signup.
type Interest struct {
	InterestID  string    `json:"id" dynamodbav:"interest_id"`
	Name        string    `json:"name" dynamodbav:"name"`
	Category    string    `json:"category" dynamodbav:"category"`
	Description string    `json:"description,omitempty" dynamodbav:"description"`
	Enable      bool      `json:"enable" dynamodbav:"enable"`
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updated" dynamodbav:"updated_at"`
}

type InterestInput struct {
	Name        string `json:"name" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Description string `json:"description"`
	Enable      *bool  `json:"enable"`
}
