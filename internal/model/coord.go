package model

// Coord точка перевала. Не дедуплицируется, создаётся на каждую отправку.
type Coord struct {
	ID        int64 `gorm:"primaryKey"`
	Latitude  float64
	Longitude float64
	Height    float64
}

func (Coord) TableName() string { return "coords" }
