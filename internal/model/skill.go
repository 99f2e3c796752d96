package model

// Skill is a named capability, optionally owned by a user.
type Skill struct {
	ID     uint    `json:"id" gorm:"primaryKey"`
	Name   string  `json:"name" gorm:"size:255;not null"`
	UserID *string `json:"userId" gorm:"type:varchar(36);index"`

	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
}
