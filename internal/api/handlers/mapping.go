package handlers

import (
	"trip-log-service/internal/api/dto"
	"trip-log-service/internal/domain"
	"trip-log-service/internal/services"
)

const segmentTimeLayout = "2006-01-02T15:04:05"

func routePointsResponse(points []domain.RoutePoint) []dto.RoutePointResponse {
	out := make([]dto.RoutePointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, dto.RoutePointResponse{
			Type:     string(p.Type),
			Address:  p.Address,
			Coords:   p.Coords.CoordsToList(),
			Sequence: p.Sequence,
		})
	}
	return out
}

func fuelStopsResponse(stops []domain.FuelStop) []dto.FuelStopResponse {
	out := make([]dto.FuelStopResponse, 0, len(stops))
	for _, s := range stops {
		out = append(out, dto.FuelStopResponse{
			MileageMark:           s.MileageMark,
			Label:                 s.Label,
			EstimatedHoursElapsed: s.EstimatedHoursElapsed,
			DurationMinutes:       s.DurationMinutes,
		})
	}
	return out
}

func restStopsResponse(stops []domain.RestStop) []dto.RestStopResponse {
	out := make([]dto.RestStopResponse, 0, len(stops))
	for _, s := range stops {
		out = append(out, dto.RestStopResponse{
			HoursElapsedMark:  s.HoursElapsedMark,
			Label:             s.Label,
			RestDurationHours: s.RestDurationHours,
		})
	}
	return out
}

func routeResponse(p *services.RoutePlan) dto.RouteResponse {
	return dto.RouteResponse{
		TotalDistance:     p.Route.TotalDistanceMiles,
		EstimatedDuration: p.Route.EstimatedDurationHours,
		TotalDays:         p.TotalDays,
		RoutePoints:       routePointsResponse(p.Route.Points),
		Geometry:          p.Route.Geometry,
		FuelStops:         fuelStopsResponse(p.FuelStops),
		RestStops:         restStopsResponse(p.RestStops),
	}
}

func tripResponse(t *domain.Trip) dto.TripResponse {
	res := dto.TripResponse{
		ID:                t.ID,
		CurrentLocation:   t.CurrentLocation,
		PickupLocation:    t.PickupLocation,
		DropoffLocation:   t.DropoffLocation,
		CurrentCycleUsed:  t.CurrentCycleUsed,
		TotalDistance:     t.TotalDistanceMiles,
		EstimatedDuration: t.EstimatedDurationHours,
		CreatedAt:         t.CreatedAt,
		RoutePoints:       routePointsResponse(t.RoutePoints),
		Geometry:          t.Geometry,
		FuelStops:         fuelStopsResponse(t.FuelStops),
		RestStops:         restStopsResponse(t.RestStops),
	}
	if len(t.Logs) > 0 {
		res.Logs = logsResponse(t.Logs)
	}
	return res
}

func logsResponse(logs []domain.DailyLog) []dto.LogResponse {
	out := make([]dto.LogResponse, 0, len(logs))
	for i := range logs {
		out = append(out, logResponse(&logs[i]))
	}
	return out
}

func logResponse(l *domain.DailyLog) dto.LogResponse {
	segs := make([]dto.DutyStatusResponse, 0, len(l.Segments))
	for _, s := range l.Segments {
		segs = append(segs, dto.DutyStatusResponse{
			StartTime: s.StartTime.Format(segmentTimeLayout),
			EndTime:   s.EndTime.Format(segmentTimeLayout),
			Status:    string(s.Status),
			Location:  s.Location,
			Remarks:   s.Remarks,
		})
	}

	violations := make([]dto.ViolationResponse, 0, len(l.Compliance.Violations))
	for _, v := range l.Compliance.Violations {
		violations = append(violations, dto.ViolationResponse{
			Type:        string(v.Type),
			Severity:    string(v.Severity),
			Description: v.Description,
			Rule:        v.Rule,
		})
	}

	return dto.LogResponse{
		ID:            l.ID,
		LogDate:       l.LogDate.Format("2006-01-02"),
		DayIndex:      l.DayIndex,
		DriverName:    l.DriverName,
		CarrierName:   l.CarrierName,
		VehicleNumber: l.VehicleNumber,

		OffDutyHours:      l.Allocation.OffDutyHours,
		SleeperBerthHours: l.Allocation.SleeperBerthHours,
		DrivingHours:      l.Allocation.DrivingHours,
		OnDutyHours:       l.Allocation.OnDutyHours,

		CycleHoursUsed:     l.CycleHoursUsed,
		TotalOnDuty7Days:   l.TotalOnDuty7Days,
		TotalOnDuty5Days:   l.TotalOnDuty5Days,
		TotalOnDuty6Days:   l.TotalOnDuty6Days,
		Rolling8DayHours:   l.RollingCycle.Rolling8DayHours,
		Rolling7DayHours:   l.RollingCycle.Rolling7DayHours,
		HoursAvailable70hr: l.RollingCycle.HoursAvailable70hr,
		HoursAvailable60hr: l.RollingCycle.HoursAvailable60hr,

		SleeperBerth: dto.SleeperBerthResponse{
			OffDutyHours:      l.SleeperBerth.OffDutyHours,
			SleeperBerthHours: l.SleeperBerth.SleeperBerthHours,
			SplitApplied:      l.SleeperBerth.SplitApplied,
			SplitType:         string(l.SleeperBerth.SplitType),
			Compliant:         l.SleeperBerth.Compliant,
			Narrative:         l.SleeperBerth.Narrative,
		},
		Restart: dto.RestartResponse{
			RestartApplies: l.Restart.RestartApplies,
			CycleReset:     l.Restart.CycleReset,
			CycleHoursUsed: l.Restart.CycleHoursUsed,
			Reason:         l.Restart.Reason,
		},
		Compliance: dto.ComplianceResponse{
			Status:                  string(l.Compliance.Status),
			ViolationCount:          l.Compliance.ViolationCount,
			OverallSeverity:         string(l.Compliance.OverallSeverity),
			IsCompliant:             l.Compliance.IsCompliant,
			RequiresImmediateAction: l.Compliance.RequiresImmediateAction,
			Violations:              violations,
		},
		DutyStatuses: segs,
	}
}
