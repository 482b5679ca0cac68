package services

import (
	"fmt"
	"log"
	"strings"

	"document-portal-api/config"
	"document-portal-api/models"
)

// Notifier receives a fire-and-forget callback after a successful
// workflow transition. Implementations must never fail the transition.
type Notifier interface {
	DocumentActioned(doc models.Document, action WorkflowAction, actor models.User, comment string)
}

// EmailNotifier mails the uploader about workflow activity on their
// document. Delivery problems are logged and swallowed.
type EmailNotifier struct{}

func NewEmailNotifier() *EmailNotifier {
	return &EmailNotifier{}
}

func (n *EmailNotifier) DocumentActioned(doc models.Document, action WorkflowAction, actor models.User, comment string) {
	go func() {
		to := strings.TrimSpace(doc.Uploader.Email)
		if to == "" {
			log.Printf("Workflow %s on document %d by user %d (no uploader email on record)",
				action, doc.DocumentID, actor.UserID)
			return
		}

		subject := fmt.Sprintf("Document %q: %s", doc.OriginalFilename, actionLabel(action))
		body := fmt.Sprintf(
			"<p>%s performed <b>%s</b> on your document <b>%s</b>.</p><p>New status: <b>%s</b></p>",
			actor.FullName(), actionLabel(action), doc.OriginalFilename, doc.Status,
		)
		if strings.TrimSpace(comment) != "" {
			body += fmt.Sprintf("<p>Comment: %s</p>", comment)
		}

		if err := config.SendMail([]string{to}, subject, body); err != nil {
			log.Printf("Warning: failed to send workflow notification for document %d: %v", doc.DocumentID, err)
		}
	}()
}

// LogNotifier only writes to the application log. Used when SMTP is not
// configured and in tests.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) DocumentActioned(doc models.Document, action WorkflowAction, actor models.User, comment string) {
	log.Printf("Workflow %s on document %d (%s) by user %d, new status %s",
		action, doc.DocumentID, doc.OriginalFilename, actor.UserID, doc.Status)
}

func actionLabel(action WorkflowAction) string {
	return strings.ReplaceAll(string(action), "_", " ")
}
