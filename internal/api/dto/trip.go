package dto

import "time"

type TripRequest struct {
	CurrentLocation  string  `json:"current_location"`
	PickupLocation   string  `json:"pickup_location"`
	DropoffLocation  string  `json:"dropoff_location"`
	CurrentCycleUsed float64 `json:"current_cycle_used"`
}

type RouteRequest struct {
	CurrentLocation string `json:"current_location"`
	PickupLocation  string `json:"pickup_location"`
	DropoffLocation string `json:"dropoff_location"`
}

type RoutePointResponse struct {
	Type     string    `json:"type"`
	Address  string    `json:"address"`
	Coords   []float64 `json:"coords"`
	Sequence int       `json:"sequence"`
}

type FuelStopResponse struct {
	MileageMark           float64 `json:"mileage_mark"`
	Label                 string  `json:"label"`
	EstimatedHoursElapsed float64 `json:"estimated_hours_elapsed"`
	DurationMinutes       int     `json:"duration_minutes"`
}

type RestStopResponse struct {
	HoursElapsedMark  float64 `json:"hours_elapsed_mark"`
	Label             string  `json:"label"`
	RestDurationHours float64 `json:"rest_duration_hours"`
}

type RouteResponse struct {
	TotalDistance     float64              `json:"total_distance"`
	EstimatedDuration float64              `json:"estimated_duration"`
	TotalDays         int                  `json:"total_days"`
	RoutePoints       []RoutePointResponse `json:"route_points"`
	Geometry          [][]float64          `json:"geometry"`
	FuelStops         []FuelStopResponse   `json:"fuel_stops"`
	RestStops         []RestStopResponse   `json:"rest_stops"`
}

type TripResponse struct {
	ID                string               `json:"id"`
	CurrentLocation   string               `json:"current_location"`
	PickupLocation    string               `json:"pickup_location"`
	DropoffLocation   string               `json:"dropoff_location"`
	CurrentCycleUsed  float64              `json:"current_cycle_used"`
	TotalDistance     float64              `json:"total_distance"`
	EstimatedDuration float64              `json:"estimated_duration"`
	CreatedAt         time.Time            `json:"created_at"`
	RoutePoints       []RoutePointResponse `json:"route_points"`
	Geometry          [][]float64          `json:"geometry,omitempty"`
	FuelStops         []FuelStopResponse   `json:"fuel_stops"`
	RestStops         []RestStopResponse   `json:"rest_stops"`
	Logs              []LogResponse        `json:"eld_logs,omitempty"`
}

type ListTripResponse struct {
	Trips []TripResponse `json:"trips"`
}

type DutyStatusResponse struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
	Location  string `json:"location"`
	Remarks   string `json:"remarks"`
}

type ViolationResponse struct {
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
	Rule        string `json:"rule"`
}

type ComplianceResponse struct {
	Status                  string              `json:"compliance_status"`
	ViolationCount          int                 `json:"violation_count"`
	OverallSeverity         string              `json:"overall_severity"`
	IsCompliant             bool                `json:"is_compliant"`
	RequiresImmediateAction bool                `json:"requires_immediate_action"`
	Violations              []ViolationResponse `json:"violations"`
}

type SleeperBerthResponse struct {
	OffDutyHours      float64 `json:"off_duty_hours"`
	SleeperBerthHours float64 `json:"sleeper_berth_hours"`
	SplitApplied      bool    `json:"split_applied"`
	SplitType         string  `json:"split_type"`
	Compliant         bool    `json:"compliant"`
	Narrative         string  `json:"narrative"`
}

type RestartResponse struct {
	RestartApplies bool    `json:"restart_applies"`
	CycleReset     bool    `json:"cycle_reset"`
	CycleHoursUsed float64 `json:"cycle_hours_used"`
	Reason         string  `json:"reason"`
}

type LogResponse struct {
	ID            int64  `json:"id"`
	LogDate       string `json:"log_date"`
	DayIndex      int    `json:"day_index"`
	DriverName    string `json:"driver_name"`
	CarrierName   string `json:"carrier_name"`
	VehicleNumber string `json:"vehicle_number"`

	OffDutyHours      float64 `json:"off_duty_hours"`
	SleeperBerthHours float64 `json:"sleeper_berth_hours"`
	DrivingHours      float64 `json:"driving_hours"`
	OnDutyHours       float64 `json:"on_duty_hours"`

	CycleHoursUsed     float64 `json:"cycle_hours_used"`
	TotalOnDuty7Days   float64 `json:"total_on_duty_7_days"`
	TotalOnDuty5Days   float64 `json:"total_on_duty_5_days"`
	TotalOnDuty6Days   float64 `json:"total_on_duty_6_days"`
	Rolling8DayHours   float64 `json:"rolling_8_day_hours"`
	Rolling7DayHours   float64 `json:"rolling_7_day_hours"`
	HoursAvailable70hr float64 `json:"hours_available_70hr"`
	HoursAvailable60hr float64 `json:"hours_available_60hr"`

	SleeperBerth SleeperBerthResponse `json:"sleeper_berth"`
	Restart      RestartResponse      `json:"restart"`
	Compliance   ComplianceResponse   `json:"compliance"`
	DutyStatuses []DutyStatusResponse `json:"duty_statuses"`
}

type LogListResponse struct {
	Logs []LogResponse `json:"logs"`
}
