package model

// Статусы модерации перевала. Бизнес-логика опирается только на StatusNew.
const (
	StatusNew      = "new"
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Pereval запись о перевале (таблица pereval_added).
type Pereval struct {
	ID          int64 `gorm:"primaryKey"`
	BeautyTitle string
	Title       string
	OtherTitles string
	Connect     string
	AddTime     string // время от отправителя, хранится как есть

	// Владелец и координаты фиксируются при создании
	UserID  int64  `gorm:"not null;index"`
	User    *User  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CoordID int64  `gorm:"not null"`
	Coord   *Coord `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`

	LevelWinter *string
	LevelSummer *string
	LevelAutumn *string
	LevelSpring *string

	Status string `gorm:"not null;default:new"`
}

func (Pereval) TableName() string { return "pereval_added" }

// Editable сообщает, можно ли ещё редактировать запись с таким статусом.
func Editable(status string) bool { return status == StatusNew }
