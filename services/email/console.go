package emailsvc

import (
	"bytes"
	"fmt"
	"log"
	"mime/multipart"
	"net/mail"
	"net/textproto"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/academia/core"
)

// consoleService prints emails to the std logger instead of sending them.
type consoleService struct {
	defaultFromEmail mail.Address
	subjPrefix       string
	disableOutput    bool
	logger           core.Logger
	onSent           func(msg core.EmailMessage)
}

var _ core.EmailService = (*consoleService)(nil)

func NewConsoleService(conf *core.Config, logger core.Logger) core.EmailService {
	return &consoleService{
		defaultFromEmail: conf.DefaultFromEmail,
		subjPrefix:       "[" + conf.AppName + "] ",
		logger:           logger,
	}
}

func (svc consoleService) SendMessages(messages ...*core.EmailMessage) {
	for _, msg := range messages {
		go svc.sendMessage(msg)
	}
}

func (svc consoleService) sendMessage(msg *core.EmailMessage) {
	if err := msg.Render(); err != nil {
		svc.logger.Error("emailsvc.consoleService.sendMessage", errors.Wrap(err, "rendering email"))
		return
	}
	if msg.HasRecipients() && (msg.HasContent() || msg.HasAttachments()) {
		svc.send(*msg)
		if svc.onSent != nil {
			svc.onSent(*msg)
		}
	}
}

func (svc consoleService) send(msg core.EmailMessage) {
	body, err := svc.format(msg)
	if err != nil {
		svc.logger.Error("emailsvc.consoleService.send", errors.Wrap(err, "formatting email"))
		return
	}
	if !svc.disableOutput {
		log.Println(body)
	}
}

// format writes msg as a MIME message: text & html alternatives, wrapped with the attachments if any.
func (svc consoleService) format(msg core.EmailMessage) (string, error) {
	body := new(strings.Builder)

	// Write mail header
	_, _ = fmt.Fprintf(body, "From: %s\r\n", svc.defaultFromEmail.String())
	_, _ = fmt.Fprint(body, "MIME-Version: 1.0\r\n")
	_, _ = fmt.Fprintf(body, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	_, _ = fmt.Fprintf(body, "Subject: %s\r\n", svc.subjPrefix+msg.Subject)
	_, _ = fmt.Fprintf(body, "To: %s\r\n", svc.joinAddresses(msg.To))
	if len(msg.Cc) > 0 {
		_, _ = fmt.Fprintf(body, "CC: %s\r\n", svc.joinAddresses(msg.Cc))
	}
	if len(msg.Bcc) > 0 {
		_, _ = fmt.Fprintf(body, "BCC: %s\r\n", svc.joinAddresses(msg.Bcc))
	}

	alt := new(bytes.Buffer)
	altW := multipart.NewWriter(alt)
	w, err := altW.CreatePart(textproto.MIMEHeader{"Content-Type": {"text/plain; charset=utf-8"}})
	if err != nil {
		return "", errors.Wrap(err, "creating text/plain part")
	}
	_, _ = fmt.Fprintf(w, "%s\r\n", msg.TextContent)
	if msg.HTMLContent != "" {
		if w, err = altW.CreatePart(textproto.MIMEHeader{"Content-Type": {"text/html; charset=utf-8"}}); err != nil {
			return "", errors.Wrap(err, "creating text/html part")
		}
		_, _ = fmt.Fprintf(w, "%s\r\n", msg.HTMLContent)
	}
	if err = altW.Close(); err != nil {
		return "", errors.Wrap(err, "closing multipart/alternative")
	}
	altType := "multipart/alternative; boundary=" + altW.Boundary()

	if !msg.HasAttachments() {
		_, _ = fmt.Fprintf(body, "Content-Type: %s\r\n\r\n", altType)
		body.Write(alt.Bytes())
		return body.String(), nil
	}

	mixed := new(bytes.Buffer)
	mixedW := multipart.NewWriter(mixed)
	if w, err = mixedW.CreatePart(textproto.MIMEHeader{"Content-Type": {altType}}); err != nil {
		return "", errors.Wrap(err, "creating multipart/alternative part")
	}
	_, _ = w.Write(alt.Bytes())
	for _, at := range msg.Attachments {
		w, err = mixedW.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {at.ContentType},
			"Content-Transfer-Encoding": {"base64"},
			"Content-Disposition":       {"attachment; filename=" + at.Filename}})
		if err != nil {
			return "", errors.Wrap(err, "creating "+at.ContentType+" part")
		}
		_, _ = fmt.Fprintf(w, "%s\r\n", at.Content.String())
	}
	if err = mixedW.Close(); err != nil {
		return "", errors.Wrap(err, "closing multipart/mixed")
	}

	_, _ = fmt.Fprintf(body, "Content-Type: multipart/mixed; boundary=%s\r\n\r\n", mixedW.Boundary())
	body.Write(mixed.Bytes())
	return body.String(), nil
}

func (svc consoleService) joinAddresses(addrs []mail.Address) string {
	toJoin := make([]string, 0, len(addrs))
	for _, a := range addrs {
		toJoin = append(toJoin, a.String())
	}
	return strings.Join(toJoin, ", ")
}

// ConsoleServiceMock sends synchronously and keeps the sent messages.
type ConsoleServiceMock struct {
	consoleService

	mu   sync.Mutex
	sent []core.EmailMessage
}

func NewConsoleServiceMock(conf *core.Config, logger core.Logger) *ConsoleServiceMock {
	svc := &ConsoleServiceMock{
		consoleService: consoleService{
			defaultFromEmail: conf.DefaultFromEmail,
			subjPrefix:       "[" + conf.AppName + "] ",
			disableOutput:    true,
			logger:           logger,
		},
	}
	svc.onSent = func(msg core.EmailMessage) {
		svc.mu.Lock()
		svc.sent = append(svc.sent, msg)
		svc.mu.Unlock()
	}
	return svc
}

func (svc *ConsoleServiceMock) SendMessages(messages ...*core.EmailMessage) {
	for _, msg := range messages {
		// run synchronously
		svc.sendMessage(msg)
	}
}

// SentMessages returns the messages sent so far.
func (svc *ConsoleServiceMock) SentMessages() []core.EmailMessage {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	sent := make([]core.EmailMessage, len(svc.sent))
	copy(sent, svc.sent)
	return sent
}

// Reset forgets the messages sent so far.
func (svc *ConsoleServiceMock) Reset() {
	svc.mu.Lock()
	svc.sent = nil
	svc.mu.Unlock()
}
