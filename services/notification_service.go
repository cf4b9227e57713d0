package services

import (
	"fmt"
	"html/template"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"performance-management-api/config"
	"performance-management-api/models"
)

// NotificationEvent is one pending notification produced by a lifecycle
// operation. Events are collected while the operation runs and dispatched by
// the caller after the state change commits, so the transition logic itself
// never depends on the notification store.
type NotificationEvent struct {
	RecipientID   int
	Title         string
	Message       string
	Type          string
	GoalID        *int
	SenderID      *int
	RelatedUserID *int
}

// GoalSubmittedEvent notifies the goal's assigned reviewer.
func GoalSubmittedEvent(goal *models.Goal, owner *models.User) *NotificationEvent {
	if goal.ReviewerID == nil {
		return nil
	}
	goalID := goal.GoalID
	senderID := owner.UserID
	return &NotificationEvent{
		RecipientID: *goal.ReviewerID,
		Title:       "New Goal Submitted for Review",
		Message:     fmt.Sprintf("%s has submitted goal '%s' for your review.", owner.Name, goal.Title),
		Type:        models.NotificationGoalSubmitted,
		GoalID:      &goalID,
		SenderID:    &senderID,
	}
}

// GoalReviewedEvent notifies the goal's owner about the reviewer's decision.
func GoalReviewedEvent(goal *models.Goal, reviewer *models.User, action string) *NotificationEvent {
	var title, message, typ string
	switch action {
	case ReviewActionApprove:
		title = "Goal Approved"
		message = fmt.Sprintf("Your goal '%s' has been approved by %s.", goal.Title, reviewer.Name)
		typ = models.NotificationGoalApproved
	case ReviewActionReject:
		title = "Goal Rejected"
		message = fmt.Sprintf("Your goal '%s' has been rejected by %s.", goal.Title, reviewer.Name)
		typ = models.NotificationGoalRejected
	case ReviewActionReturn:
		title = "Goal Returned for Revision"
		message = fmt.Sprintf("Your goal '%s' has been returned for revision by %s.", goal.Title, reviewer.Name)
		typ = models.NotificationGoalReturned
	default:
		title = "Goal Review Update"
		message = fmt.Sprintf("Your goal '%s' has been reviewed.", goal.Title)
		typ = models.NotificationSystemMessage
	}

	goalID := goal.GoalID
	senderID := reviewer.UserID
	return &NotificationEvent{
		RecipientID: goal.UserID,
		Title:       title,
		Message:     message,
		Type:        typ,
		GoalID:      &goalID,
		SenderID:    &senderID,
	}
}

// UserStatusEvent notifies a user about an account activation decision.
func UserStatusEvent(target *models.User, admin *models.User, approved bool) *NotificationEvent {
	title := "Account Approved"
	message := "Your account has been approved. You can now use the system."
	typ := models.NotificationUserApproved
	if !approved {
		title = "Account Deactivated"
		message = "Your account has been deactivated. Please contact your administrator."
		typ = models.NotificationUserRejected
	}

	senderID := admin.UserID
	relatedID := target.UserID
	return &NotificationEvent{
		RecipientID:   target.UserID,
		Title:         title,
		Message:       message,
		Type:          typ,
		SenderID:      &senderID,
		RelatedUserID: &relatedID,
	}
}

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Create inserts one notification row.
func (s *NotificationService) Create(event *NotificationEvent) (*models.Notification, error) {
	notif := models.Notification{
		UserID:           event.RecipientID,
		Title:            event.Title,
		Message:          event.Message,
		NotificationType: event.Type,
		GoalID:           event.GoalID,
		SenderID:         event.SenderID,
		RelatedUserID:    event.RelatedUserID,
		IsRead:           false,
		CreatedAt:        time.Now(),
	}
	if err := s.db.Create(&notif).Error; err != nil {
		return nil, err
	}
	return &notif, nil
}

// Dispatch delivers the post-commit events of a lifecycle operation.
// Delivery is fire-and-forget: failures are logged and never reported back,
// because the triggering state change has already committed.
func (s *NotificationService) Dispatch(events []*NotificationEvent) {
	for _, event := range events {
		if event == nil {
			continue
		}
		notif, err := s.Create(event)
		if err != nil {
			log.Printf("notification dispatch: failed to create %s for user %d: %v",
				event.Type, event.RecipientID, err)
			continue
		}
		s.sendEmailCopy(notif)
	}
}

// sendEmailCopy mails the notification to the recipient in the background
// when SMTP is configured.
func (s *NotificationService) sendEmailCopy(notif *models.Notification) {
	var recipient models.User
	if err := s.db.Select("user_id, name, email").
		First(&recipient, "user_id = ?", notif.UserID).Error; err != nil {
		return
	}
	if recipient.Email == "" {
		return
	}

	title := notif.Title
	body := buildNotificationEmailHTML(recipient.Name, notif.Title, notif.Message)
	go func() {
		if err := config.SendMail([]string{recipient.Email}, title, body); err != nil {
			log.Printf("notification dispatch: email to %s failed: %v", recipient.Email, err)
		}
	}()
}

// ListForUser returns the newest notifications for a user, optionally only
// unread ones. limit <= 0 falls back to 50.
func (s *NotificationService) ListForUser(userID int, unreadOnly bool, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}

	query := s.db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Order("created_at DESC").Limit(limit).Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// UnreadCount returns the number of unread notifications for a user.
func (s *NotificationService) UnreadCount(userID int) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead flips is_read on one of the user's notifications.
func (s *NotificationService) MarkRead(userID, notificationID int) (*models.Notification, error) {
	var notif models.Notification
	if err := s.db.Where("notification_id = ? AND user_id = ?", notificationID, userID).
		First(&notif).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}

	if !notif.IsRead {
		if err := s.db.Model(&notif).Update("is_read", true).Error; err != nil {
			return nil, err
		}
		notif.IsRead = true
	}
	return &notif, nil
}

// MarkAllRead marks every unread notification of the user as read and
// returns how many rows changed.
func (s *NotificationService) MarkAllRead(userID int) (int64, error) {
	result := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func buildNotificationEmailHTML(recipientName, subject, message string) string {
	subject = template.HTMLEscapeString(subject)
	recipientName = template.HTMLEscapeString(recipientName)
	message = strings.ReplaceAll(template.HTMLEscapeString(message), "\n", "<br />")

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>%s</title></head>
<body style="margin:0;padding:0;background-color:#f9fafb;font-family:'Segoe UI',Tahoma,Arial,sans-serif;">
<div style="max-width:640px;margin:0 auto;padding:24px 20px;">
  <div style="background-color:#ffffff;border:1px solid #e5e7eb;border-radius:12px;padding:24px;">
    <p style="margin:0 0 16px 0;font-size:16px;line-height:1.7;color:#111827;">Dear %s,</p>
    <p style="margin:0;font-size:16px;line-height:1.7;color:#111827;word-break:break-word;">%s</p>
  </div>
</div>
</body>
</html>`, subject, recipientName, message)
}
