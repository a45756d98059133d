package entity

type EmploymentType struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string `gorm:"type:text"`
}

type WorkArrangement struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string `gorm:"type:text"`
}

type JobApplicationStatus struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string `gorm:"type:text"`
}
