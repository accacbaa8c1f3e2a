package model

// User отправитель записи о перевале. Создаётся один раз на email.
type User struct {
	ID    int64  `gorm:"primaryKey"`
	Email string `gorm:"not null;uniqueIndex"`
	Fam   string
	Name  string
	Otc   string
	Phone string
}

func (User) TableName() string { return "users" }
