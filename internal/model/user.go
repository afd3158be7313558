// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// PasswordHashはAPIレスポンスに含めてはならない。
type User struct {
	ID                 string
	Email              string
	Name               string
	PasswordHash       string
	Plan               string // free / pro / enterprise
	SubscriptionStatus string
	CurrentPeriodEnd   *time.Time
	CreatedAt          time.Time
	LastLogin          *time.Time
}
