package entity

import (
	"time"
)

// Job represents a repair work order with customer, pricing, and status.
type Job struct {
	ID              int        `gorm:"primaryKey" json:"id"`
	Title           string     `gorm:"size:255;not null" json:"title"`
	CustomerName    string     `gorm:"size:255" json:"customer_name"`
	CustomerPhone   string     `gorm:"size:64" json:"customer_phone"`
	Description     string     `gorm:"column:job_description;type:text" json:"job_description"`
	WorkTimeMinutes int        `json:"work_time_minutes"`
	PricePerMinute  float64    `json:"price_per_minute"`
	Date            time.Time  `gorm:"not null;index" json:"date"`
	StatusID        int16      `gorm:"not null" json:"status_id"`
	Status          *JobStatus `gorm:"foreignKey:StatusID" json:"status,omitempty"`
}

func (Job) TableName() string {
	return "jobs"
}

// TotalPrice is the charge for the work performed so far.
func (j *Job) TotalPrice() float64 {
	return float64(j.WorkTimeMinutes) * j.PricePerMinute
}
