package config

import (
	"github.com/wdotgonzales/trackjob-backend/internal/entity"

	"gorm.io/gorm"
)

var subscriptionPlans = []entity.SubscriptionPlan{
	{PlanName: "1 Month Subscription", PriceCents: 12000, DurationDays: 30},
	{PlanName: "4 Month Subscription", PriceCents: 32000, DurationDays: 120},
	{PlanName: "10 Month Subscription", PriceCents: 50000, DurationDays: 300},
}

var employmentTypes = []entity.EmploymentType{
	{Title: "Full-time", Description: "Employees working a standard number of hours per week (e.g., 40 hours)."},
	{Title: "Part-time", Description: "Employees working fewer hours than full-time, often with fewer benefits."},
	{Title: "Contract", Description: "Employees hired for a specific period or project, often without full employee benefits."},
	{Title: "Freelance", Description: "Self-employed individuals who work on a project basis without being tied to a company."},
	{Title: "Internship", Description: "Temporary employment, often for students or recent graduates, typically for learning and experience."},
	{Title: "Temporary", Description: "Employees hired for short-term needs, sometimes through staffing agencies."},
}

var workArrangements = []entity.WorkArrangement{
	{Title: "On-site", Description: "Work is done at the employer's office or site."},
	{Title: "Remote", Description: "Work is done fully outside the employer's office."},
	{Title: "Hybrid", Description: "Work is split between the office and remote locations."},
}

var jobApplicationStatuses = []entity.JobApplicationStatus{
	{Title: "Applied", Description: "You have submitted your application, but no further updates yet."},
	{Title: "Rejected", Description: "The employer has declined your application."},
	{Title: "Ghosted", Description: "The employer has stopped responding without providing any updates."},
	{Title: "Under Review", Description: "Your application is being assessed by the hiring team."},
	{Title: "Offer Received", Description: "The company has extended a job offer to you."},
	{Title: "Interview Scheduled", Description: "You have been invited for an interview, and a date is set."},
	{Title: "Withdrawn/Closed", Description: "The job listing is no longer active, or you have withdrawn your application."},
	{Title: "Accepted Offer", Description: "You have accepted a job offer and will be joining the company."},
}

// Seed inserts the reference data. Rows are matched by name, so reruns are no-ops.
func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, plan := range subscriptionPlans {
			row := plan
			if err := tx.Where(entity.SubscriptionPlan{PlanName: row.PlanName}).FirstOrCreate(&row).Error; err != nil {
				return err
			}
		}
		for _, item := range employmentTypes {
			row := item
			if err := tx.Where(entity.EmploymentType{Title: row.Title}).FirstOrCreate(&row).Error; err != nil {
				return err
			}
		}
		for _, item := range workArrangements {
			row := item
			if err := tx.Where(entity.WorkArrangement{Title: row.Title}).FirstOrCreate(&row).Error; err != nil {
				return err
			}
		}
		for _, item := range jobApplicationStatuses {
			row := item
			if err := tx.Where(entity.JobApplicationStatus{Title: row.Title}).FirstOrCreate(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
