package util

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ariebrainware/dental-practice-api/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditEventType represents different types of audit events
type AuditEventType string

const (
	EventEndpointCall       AuditEventType = "ENDPOINT_CALL"
	EventReferralIssued     AuditEventType = "REFERRAL_ISSUED"
	EventGenerationFailed   AuditEventType = "AI_GENERATION_FAILED"
	EventRateLimitExceeded  AuditEventType = "RATE_LIMIT_EXCEEDED"
	EventSuspiciousActivity AuditEventType = "SUSPICIOUS_ACTIVITY"
)

// AuditEvent represents an audit event to be logged
type AuditEvent struct {
	EventType AuditEventType
	IP        string
	UserAgent string
	Message   string
	Details   map[string]interface{}
}

var auditLogger *log.Logger
var auditDB *gorm.DB

// SetAuditLoggerDB sets a gorm DB instance used by the audit logger.
// Call this during application startup (e.g. in main) after DB initialization.
func SetAuditLoggerDB(db *gorm.DB) {
	auditDB = db
}

func init() {
	auditLogger = log.New(os.Stdout, "[AUDIT] ", log.LstdFlags|log.Lmsgprefix)
}

// sanitizeLogValue removes newlines and other characters that could break log parsing
func sanitizeLogValue(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.ReplaceAll(value, "\t", " ")
	// Truncate very long values to prevent log flooding
	if len(value) > 200 {
		value = value[:200] + "..."
	}
	return value
}

// LogAuditEvent logs an audit event and persists it when a DB is configured.
func LogAuditEvent(event AuditEvent) {
	msg := fmt.Sprintf("Event=%s IP=%s UserAgent=%s Message=%s",
		sanitizeLogValue(string(event.EventType)),
		sanitizeLogValue(event.IP),
		sanitizeLogValue(event.UserAgent),
		sanitizeLogValue(event.Message),
	)
	if len(event.Details) > 0 {
		msg = fmt.Sprintf("%s DetailsCount=%d", msg, len(event.Details))
	}

	auditLogger.Println(msg)

	// Persist to DB if available (best-effort, do not fail the operation)
	if auditDB != nil {
		var details datatypes.JSON
		if event.Details != nil {
			if b, err := json.Marshal(event.Details); err == nil {
				details = datatypes.JSON(b)
			}
		}

		entry := model.AuditLog{
			EventType: string(event.EventType),
			IP:        sanitizeLogValue(event.IP),
			UserAgent: sanitizeLogValue(event.UserAgent),
			Message:   sanitizeLogValue(event.Message),
			Details:   details,
		}

		if err := auditDB.Create(&entry).Error; err != nil {
			auditLogger.Printf("Failed to persist audit event: %v", err)
		}
	}
}

// LogRateLimitExceeded logs a rate limit exceeded event
func LogRateLimitExceeded(ip, endpoint string) {
	LogAuditEvent(AuditEvent{
		EventType: EventRateLimitExceeded,
		IP:        ip,
		Message:   fmt.Sprintf("Rate limit exceeded for endpoint: %s", endpoint),
	})
}

// LogReferralIssued logs issuance of a referral access token
func LogReferralIssued(referralID, patientID uint, ip string) {
	LogAuditEvent(AuditEvent{
		EventType: EventReferralIssued,
		IP:        ip,
		Message:   fmt.Sprintf("Referral %d issued for patient %d", referralID, patientID),
		Details: map[string]interface{}{
			"referral_id": referralID,
			"patient_id":  patientID,
		},
	})
}

// LogGenerationFailure logs a failed text-generation call
func LogGenerationFailure(operation, ip string, err error) {
	LogAuditEvent(AuditEvent{
		EventType: EventGenerationFailed,
		IP:        ip,
		Message:   fmt.Sprintf("Text generation failed (%s): %v", operation, err),
		Details: map[string]interface{}{
			"operation": operation,
		},
	})
}
