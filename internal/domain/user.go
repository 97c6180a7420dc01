package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusCanceled = "canceled"
)

type User struct {
	ID                    int        `json:"id"`
	Name                  string     `json:"name"`
	Lastname              string     `json:"lastname"`
	Email                 string     `json:"email"`
	PasswordHash          string     `json:"password,omitempty"`
	Active                bool       `json:"active"`
	RoleID                int        `json:"role_id"`
	Plan                  Plan       `json:"plan"`
	SubscriptionStatus    string     `json:"subscription_status"`
	SubscriptionStartedAt *time.Time `json:"subscription_started_at"`
	ScanCreditBalance     int        `json:"scan_credit_balance"`
	ScanCreditsPurchased  int        `json:"scan_credits_purchased"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// HasActivePaidSubscription indica assinatura paga ativa e não cancelada
func (u *User) HasActivePaidSubscription() bool {
	return u.Plan.IsPaid() &&
		u.SubscriptionStatus == SubscriptionStatusActive &&
		u.SubscriptionStartedAt != nil
}

type Claims struct {
	UserID     int
	UserName   string
	UserEmail  string
	UserActive bool
	UserRoleID int
	UserPlan   Plan
	jwt.RegisteredClaims
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
