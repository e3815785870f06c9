package model

// DefaultCreditScore 新用户的初始信誉分
const DefaultCreditScore = 100

type User struct {
	Model
	Email       string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password    string `gorm:"type:varchar(255);not null" json:"-"`
	Name        string `gorm:"type:varchar(50);not null" json:"name"`
	Avatar      string `gorm:"type:varchar(512)" json:"avatar"`
	CreditScore int    `gorm:"default:100;not null" json:"credit_score"`
}
