package model

// Image изображение перевала, непрозрачные данные.
type Image struct {
	ID    int64 `gorm:"primaryKey"`
	Data  []byte
	Title string

	PerevalID int64    `gorm:"not null;index"` // ссылка на pereval_added.id
	Pereval   *Pereval `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Image) TableName() string { return "images" }
