package constvars

const (
	PatientProfileSavedMessage       = "Patient profile saved successfully"
	PatientProfileFoundMessage       = "Patient profile retrieved successfully"
	PatientProfileStatusFoundMessage = "Patient profile status retrieved successfully"
	PatientAppointmentsFoundMessage  = "Patient appointments retrieved successfully"
	PatientUpcomingCallsFoundMessage = "Upcoming calls retrieved successfully"
	DoctorProfileSavedMessage        = "Doctor profile saved successfully"
	DoctorProfileFoundMessage        = "Doctor profile retrieved successfully"
	DoctorsFoundMessage              = "Doctors retrieved successfully"
	ReviewRequestCreatedMessage      = "Review request submitted successfully"
	ReviewRequestsFoundMessage       = "Review requests retrieved successfully"
	ReviewRequestFoundMessage        = "Review request retrieved successfully"
	ReviewRequestStatsFoundMessage   = "Review request stats retrieved successfully"
	ReviewRequestUpdatedMessage      = "Review request updated successfully"
	AppointmentScheduledMessage      = "Appointment scheduled successfully"
	AppointmentsFoundMessage         = "Appointments retrieved successfully"
	AppointmentFoundMessage          = "Appointment retrieved successfully"
	AppointmentStatsFoundMessage     = "Appointment stats retrieved successfully"
	AppointmentPatientsFoundMessage  = "Patients retrieved successfully"
	AppointmentPatientsCountMessage  = "Patients count retrieved successfully"
	AppointmentJoinedMessage         = "Call room is ready"
	AppointmentUpdatedMessage        = "Appointment updated successfully"
	ServiceHealthyMessage            = "Service is healthy"
)
