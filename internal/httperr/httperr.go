package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// ======================================================
// BUSINESS CODE -> HTTP
// ======================================================

var statusByCode = map[string]int{
	"business_not_found":     http.StatusNotFound,
	"employee_not_found":     http.StatusNotFound,
	"service_not_found":      http.StatusNotFound,
	"customer_not_found":     http.StatusNotFound,
	"appointment_not_found":  http.StatusNotFound,
	"plan_not_found":         http.StatusNotFound,
	"subscription_not_found": http.StatusNotFound,

	"time_conflict":      http.StatusConflict,
	"invalid_transition": http.StatusConflict,
	"duplicate_event":    http.StatusConflict,

	"plan_limit_reached":   http.StatusPaymentRequired,
	"feature_not_in_plan":  http.StatusPaymentRequired,
	"portal_unsupported":   http.StatusNotImplemented,
	"gateway_unconfigured": http.StatusServiceUnavailable,
	"gateway_timeout":      http.StatusGatewayTimeout,
	"invalid_signature":    http.StatusUnauthorized,
	"export_unconfigured":  http.StatusServiceUnavailable,

	"forbidden":    http.StatusForbidden,
	"rate_limited": http.StatusTooManyRequests,
}

var messageByCode = map[string]string{
	"business_not_found":        "Business not found.",
	"employee_not_found":        "Employee not found.",
	"service_not_found":         "Service not found.",
	"customer_not_found":        "Customer not found.",
	"appointment_not_found":     "Appointment not found.",
	"plan_not_found":            "Plan not found.",
	"subscription_not_found":    "No active subscription for this business.",
	"plan_not_purchasable":      "This plan cannot be purchased.",
	"invalid_payload":           "Invalid webhook payload.",
	"export_unconfigured":       "Export storage is not configured.",
	"time_conflict":             "The employee already has an appointment at this time.",
	"invalid_transition":        "This status change is not allowed.",
	"invalid_status":            "Unknown appointment status.",
	"outside_working_hours":     "Outside working hours.",
	"too_soon":                  "This time is no longer available for booking.",
	"invalid_date_or_time":      "Invalid date or time.",
	"invalid_day":               "Unknown weekday in schedule.",
	"invalid_time_format":       "Times must use the HH:mm format.",
	"invalid_interval":          "Start time must be before end time.",
	"plan_limit_reached":        "Your plan limit has been reached.",
	"feature_not_in_plan":       "Your plan does not include this feature.",
	"portal_unsupported":        "The payment provider has no customer portal.",
	"gateway_unconfigured":      "The payment provider is not configured.",
	"gateway_timeout":           "The external provider did not answer in time.",
	"invalid_signature":         "Invalid webhook signature.",
	"invalid_email_domain":      "The email domain does not look valid.",
	"employee_inactive":         "This employee is not taking appointments.",
	"service_inactive":          "This service is not available.",
	"forbidden":                 "You are not allowed to do this.",
	"rate_limited":              "Too many requests, try again later.",
	"customer_name_required":    "Customer name is required.",
	"customer_contact_required": "A phone or email is required.",
	"employee_required":         "Choose an employee.",
	"invalid_schedule_owner":    "Unknown employee for this schedule.",
	"business_name_required":    "Business name is required.",
	"invalid_timezone":          "Unknown timezone.",
	"invalid_min_advance":       "Minimum advance must be zero or positive (minutes).",
	"invalid_slot_step":         "Slot step must be between 5 and 240 minutes.",
	"service_name_required":     "Service name is required.",
	"invalid_duration":          "Duration must be a positive number of minutes.",
	"invalid_price":             "Price cannot be negative.",
	"employee_name_required":    "Employee name is required.",
	"invalid_request":           "Invalid request data.",
}

// StatusFor maps a business code to an HTTP status. Unknown codes are client errors.
func StatusFor(code string) int {
	if s, ok := statusByCode[code]; ok {
		return s
	}
	return http.StatusBadRequest
}

// FromError writes err as a JSON error: business errors keep their code,
// everything else becomes a 500 with the given fallback code.
func FromError(c *gin.Context, err error, fallbackCode string) {
	code := CodeOf(err)
	if code == "" {
		Internal(c, fallbackCode, "Unexpected error.")
		return
	}

	msg, ok := messageByCode[code]
	if !ok {
		msg = err.Error()
	}
	if be, ok := asBusiness(err); ok && be.Detail != "" {
		msg = msg + " (" + be.Detail + ")"
	}

	Write(c, StatusFor(code), code, msg)
}
