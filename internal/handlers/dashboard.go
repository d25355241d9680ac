package handlers

import (
	"fmt"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-scheduler-server/internal/models"
	"clinic-scheduler-server/internal/schedule"
	"clinic-scheduler-server/internal/utils"
)

// DashboardHandler aggregates the day's clinical activity for the
// dashboard screen.
type DashboardHandler struct {
	DB *gorm.DB
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{DB: db}
}

// ScheduleItem is one row of today's schedule table.
type ScheduleItem struct {
	ID       string `json:"id"`
	Time     string `json:"time"`
	Patient  string `json:"patient"`
	Type     string `json:"type"`
	Duration string `json:"duration"`
	Doctor   string `json:"doctor"`
	Status   string `json:"status"`
}

// DoctorStatusItem summarizes one doctor's day.
type DoctorStatusItem struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	DailyCount int64  `json:"dailyCount"`
	Next       string `json:"next"`
}

// WeeklyCount is one bar of the last-7-days chart.
type WeeklyCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// Alert is a dashboard notification.
type Alert struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// SummaryResponse is the full dashboard payload.
type SummaryResponse struct {
	TotalPatients  int64                `json:"totalPatients"`
	TodayAppts     int64                `json:"todayAppts"`
	PendingAppts   int64                `json:"pendingAppts"`
	ApptDates      []string             `json:"apptDates"`
	ScheduleData   []ScheduleItem       `json:"scheduleData"`
	DoctorStatus   []DoctorStatusItem   `json:"doctorStatus"`
	WeeklyAppts    []WeeklyCount        `json:"weeklyAppts"`
	RecentActivity []models.ActivityLog `json:"recentActivity"`
	Alerts         []Alert              `json:"alerts"`
}

// GetSummary handles computing the dashboard summary for today, using the
// server's local calendar day throughout.
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	now := time.Now()
	today := schedule.DateOf(now)

	summary := SummaryResponse{
		ApptDates:      []string{},
		ScheduleData:   []ScheduleItem{},
		DoctorStatus:   []DoctorStatusItem{},
		WeeklyAppts:    []WeeklyCount{},
		RecentActivity: []models.ActivityLog{},
		Alerts:         []Alert{},
	}

	if err := h.DB.Model(&models.Patient{}).Count(&summary.TotalPatients).Error; err != nil {
		utils.ServiceUnavailable(c, "Failed to load dashboard data: "+err.Error())
		return
	}
	if err := h.DB.Model(&models.Appointment{}).
		Where("date = ?", today).Count(&summary.TodayAppts).Error; err != nil {
		utils.ServiceUnavailable(c, "Failed to load dashboard data: "+err.Error())
		return
	}
	if err := h.DB.Model(&models.Appointment{}).
		Where("date = ? AND status = ?", today, models.StatusPending).
		Count(&summary.PendingAppts).Error; err != nil {
		utils.ServiceUnavailable(c, "Failed to load dashboard data: "+err.Error())
		return
	}

	// Distinct non-cancelled appointment days feed the calendar dots.
	if err := h.DB.Model(&models.Appointment{}).
		Where("status != ?", models.StatusCancelled).
		Distinct().Pluck("date", &summary.ApptDates).Error; err != nil {
		utils.ServiceUnavailable(c, "Failed to load dashboard data: "+err.Error())
		return
	}

	var todayAppointments []models.Appointment
	if err := h.DB.Preload("Patient").Preload("Doctor").
		Where("date = ? AND status != ?", today, models.StatusCancelled).
		Find(&todayAppointments).Error; err != nil {
		utils.ServiceUnavailable(c, "Failed to load dashboard data: "+err.Error())
		return
	}
	// Slot labels are 12-hour strings, so ordering happens here, not in SQL.
	sort.SliceStable(todayAppointments, func(i, j int) bool {
		return schedule.SlotBefore(todayAppointments[i].Time, todayAppointments[j].Time)
	})
	for _, a := range todayAppointments {
		item := ScheduleItem{
			ID:       a.ID,
			Time:     a.Time,
			Patient:  "Unknown",
			Type:     a.VisitType,
			Duration: fmt.Sprintf("%d min", a.DurationMinutes),
			Doctor:   "Unassigned",
			Status:   string(a.Status),
		}
		if a.Patient.Name != "" {
			item.Patient = a.Patient.Name
		}
		if a.Doctor.LastName != "" {
			item.Doctor = "Dr. " + a.Doctor.LastName
		}
		summary.ScheduleData = append(summary.ScheduleData, item)
	}

	doctorStatus, err := h.doctorStatus(todayAppointments, now)
	if err != nil {
		utils.ServiceUnavailable(c, "Failed to load dashboard data: "+err.Error())
		return
	}
	summary.DoctorStatus = doctorStatus

	weekly, err := h.weeklyCounts(now)
	if err != nil {
		utils.ServiceUnavailable(c, "Failed to load dashboard data: "+err.Error())
		return
	}
	summary.WeeklyAppts = weekly

	if err := h.DB.Order("created_at desc").Limit(5).
		Find(&summary.RecentActivity).Error; err != nil {
		utils.ServiceUnavailable(c, "Failed to load dashboard data: "+err.Error())
		return
	}

	alerts, err := h.buildAlerts(today, summary.PendingAppts)
	if err != nil {
		utils.ServiceUnavailable(c, "Failed to load dashboard data: "+err.Error())
		return
	}
	summary.Alerts = alerts

	utils.Success(c, "Dashboard summary", summary)
}

// doctorStatus derives each doctor's daily load and next upcoming slot from
// today's appointment list.
func (h *DashboardHandler) doctorStatus(todayAppointments []models.Appointment, now time.Time) ([]DoctorStatusItem, error) {
	var doctors []models.Doctor
	if err := h.DB.Find(&doctors).Error; err != nil {
		return nil, err
	}

	nowMin := now.Hour()*60 + now.Minute()
	items := make([]DoctorStatusItem, 0, len(doctors))
	for _, doc := range doctors {
		item := DoctorStatusItem{
			Name:   "Dr. " + doc.LastName,
			Status: "Available",
			Next:   "None",
		}

		nextMin := -1
		for _, a := range todayAppointments {
			if a.DoctorID != doc.ID {
				continue
			}
			item.DailyCount++
			slotMin, err := schedule.SlotMinutes(a.Time)
			if err != nil {
				continue
			}
			if slotMin > nowMin && (nextMin == -1 || slotMin < nextMin) {
				nextMin = slotMin
				item.Next = a.Time
			}
		}
		if item.DailyCount > 0 {
			item.Status = "Busy"
		}
		items = append(items, item)
	}
	return items, nil
}

// weeklyCounts buckets the last seven local calendar days, oldest first,
// today last.
func (h *DashboardHandler) weeklyCounts(now time.Time) ([]WeeklyCount, error) {
	days := make([]string, 0, 7)
	for i := 6; i >= 0; i-- {
		days = append(days, schedule.DateOf(now.AddDate(0, 0, -i)))
	}

	type dateCount struct {
		Date  string
		Count int64
	}
	var rows []dateCount
	if err := h.DB.Model(&models.Appointment{}).
		Select("date, count(id) as count").
		Where("date >= ?", days[0]).
		Group("date").Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Date] = row.Count
	}

	weekly := make([]WeeklyCount, 0, 7)
	for _, day := range days {
		parsed, err := time.ParseInLocation("2006-01-02", day, now.Location())
		if err != nil {
			return nil, err
		}
		weekly = append(weekly, WeeklyCount{
			Day:   parsed.Format("Mon"),
			Count: counts[day],
		})
	}
	return weekly, nil
}

// buildAlerts flags doctors on leave today and a pending-appointment
// backlog.
func (h *DashboardHandler) buildAlerts(today string, pendingAppts int64) ([]Alert, error) {
	type leaveRow struct {
		LastName string
		Reason   string
	}
	var leaves []leaveRow
	if err := h.DB.Model(&models.DoctorLeave{}).
		Select("doctors.last_name, doctor_leaves.reason").
		Joins("JOIN doctors ON doctors.id = doctor_leaves.doctor_id").
		Where("doctor_leaves.date = ?", today).
		Scan(&leaves).Error; err != nil {
		return nil, err
	}

	alerts := make([]Alert, 0, len(leaves)+1)
	for _, leave := range leaves {
		alerts = append(alerts, Alert{
			Title:   "Doctor Absent",
			Message: fmt.Sprintf("Dr. %s is on leave (%s).", leave.LastName, leave.Reason),
			Type:    "warning",
		})
	}
	if pendingAppts > 5 {
		alerts = append(alerts, Alert{
			Title:   "Action Required",
			Message: fmt.Sprintf("%d appointments are pending confirmation.", pendingAppts),
			Type:    "danger",
		})
	}
	return alerts, nil
}
