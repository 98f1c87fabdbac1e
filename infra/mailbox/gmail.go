package mailbox

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/labstack/gommon/log"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/Yalishenda/Invoice-Handler/entity"
)

// GmailSource fetches PDF attachments from a sender-filtered inbox.
type GmailSource struct {
	svc *gmail.Service
}

func NewGmailSource(ctx context.Context, credentialsFile string) (*GmailSource, error) {
	svc, err := gmail.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gmail.GmailReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build gmail service: %w", err)
	}
	return &GmailSource{svc: svc}, nil
}

// FetchDocuments lists at most max inbox messages from sender and downloads
// every PDF attachment whose filename is not in seen. A message that cannot
// be read or decoded is skipped; only the list call itself is fatal.
func (s *GmailSource) FetchDocuments(ctx context.Context, sender string, max int, seen map[string]bool) ([]entity.Document, error) {
	res, err := s.svc.Users.Messages.List("me").
		LabelIds("INBOX").
		Q(fmt.Sprintf("from:%s", sender)).
		MaxResults(int64(max)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list messages from %s: %w", sender, err)
	}

	if len(res.Messages) == 0 {
		log.Infof("[Mailbox] No messages found from %s", sender)
		return nil, nil
	}

	var docs []entity.Document
	for _, ref := range res.Messages {
		msg, err := s.svc.Users.Messages.Get("me", ref.Id).Format("full").Context(ctx).Do()
		if err != nil {
			log.Errorf("[Mailbox] Failed to read message %s: %v", ref.Id, err)
			continue
		}
		if msg.Payload == nil {
			continue
		}

		subject, date := headerValues(msg.Payload.Headers)
		log.Infof("[Mailbox] Processing email: %s", subject)

		for _, part := range msg.Payload.Parts {
			if part.Filename == "" || !strings.HasSuffix(part.Filename, ".pdf") {
				continue
			}
			if seen[part.Filename] {
				log.Infof("[Mailbox] File already processed: %s", part.Filename)
				continue
			}
			if part.Body == nil || part.Body.AttachmentId == "" {
				continue
			}

			att, err := s.svc.Users.Messages.Attachments.Get("me", ref.Id, part.Body.AttachmentId).Context(ctx).Do()
			if err != nil {
				log.Errorf("[Mailbox] Failed to download attachment %s: %v", part.Filename, err)
				continue
			}

			data, err := decodeAttachment(att.Data)
			if err != nil {
				log.Errorf("[Mailbox] Failed to decode attachment %s: %v", part.Filename, err)
				continue
			}

			docs = append(docs, entity.Document{
				Name:    part.Filename,
				Date:    date,
				Content: data,
			})
			log.Infof("[Mailbox] Attachment fetched: %s (%d bytes)", part.Filename, len(data))
		}
	}

	return docs, nil
}

func headerValues(headers []*gmail.MessagePartHeader) (subject, date string) {
	for _, h := range headers {
		switch h.Name {
		case "Subject":
			subject = h.Value
		case "Date":
			date = h.Value
		}
	}
	return subject, date
}

func decodeAttachment(data string) ([]byte, error) {
	if decoded, err := base64.URLEncoding.DecodeString(data); err == nil {
		return decoded, nil
	}
	return base64.RawURLEncoding.DecodeString(data)
}
