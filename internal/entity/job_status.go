package entity

// JobStatus is a reference row from the closed status set. IDs are manually
// assigned (see constants.StatusID), never auto-generated.
type JobStatus struct {
	ID   int16  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name string `gorm:"size:64;not null;unique" json:"name"`
}

func (JobStatus) TableName() string {
	return "job_status"
}
