package entity

// JobPart is the line item recording how many units of a product a job
// consumed. At most one row exists per (job, product) pair; repeated
// attachments merge into Quantity instead of inserting duplicates.
type JobPart struct {
	ID        int      `gorm:"primaryKey" json:"id"`
	JobID     int      `gorm:"not null;uniqueIndex:ux_job_parts_job_product" json:"job_id"`
	Job       *Job     `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"job,omitempty"`
	ProductID int      `gorm:"not null;uniqueIndex:ux_job_parts_job_product" json:"product_id"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int      `gorm:"not null" json:"quantity"`
}

func (JobPart) TableName() string {
	return "job_parts"
}
