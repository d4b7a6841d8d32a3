package payout

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/professor"
)

type repoMock struct {
	payloads []Payload
	err      error
}

func (repo *repoMock) CreatePayout(_ context.Context, payload Payload) (Payout, error) {
	if repo.err != nil {
		return Payout{}, repo.err
	}
	repo.payloads = append(repo.payloads, payload)
	return Payout{ID: len(repo.payloads), ProfessorID: payload.ProfessorID, Details: payload.Details, Discount: payload.Discount}, nil
}

type profRepoMock map[int]professor.Professor

func (repo profRepoMock) GetProfessor(_ context.Context, id int) (professor.Professor, error) {
	prof, ok := repo[id]
	if !ok {
		return professor.Professor{}, professor.ErrNotFound
	}
	return prof, nil
}

type mailMock struct {
	sent []*core.EmailMessage
}

func (svc *mailMock) SendMessages(messages ...*core.EmailMessage) {
	svc.sent = append(svc.sent, messages...)
}

type loggerMock struct {
	errors []string
}

func (l *loggerMock) Debug(string, ...interface{}) {}
func (l *loggerMock) Info(string, ...interface{})  {}
func (l *loggerMock) Warn(string, ...interface{})  {}
func (l *loggerMock) Error(msg string, args ...interface{}) {
	l.errors = append(l.errors, fmt.Sprint(append([]interface{}{msg}, args...)...))
}
func (l *loggerMock) Fatal(string, ...interface{}) {}

var professors = profRepoMock{
	1: {ID: 1, Name: "Ana Pérez", Email: "ana@academia.test"},
	2: {ID: 2, Name: "Luis Mora"},
}

func newPayout(professorID int) NewPayout {
	return NewPayout{
		ProfessorID: professorID,
		Items: []LineItem{
			NewClassItem(7, dec("3"), dec("20")),
			NewClassItem(8, dec("0"), dec("20")),
			NewBonusItem("bonus", dec("15")),
		},
		Discount: dec("10"),
	}
}

func TestService_Create(t *testing.T) {
	repo := new(repoMock)
	mailSvc := new(mailMock)
	logger := new(loggerMock)
	svc := NewService(repo, professors, mailSvc, logger)

	pay, err := svc.Create(context.Background(), newPayout(1))
	require.NoError(t, err)
	assert.Equal(t, 1, pay.ID)

	require.Len(t, repo.payloads, 1)
	payload := repo.payloads[0]
	assert.Equal(t, 1, payload.ProfessorID)
	assert.True(t, payload.Discount.Equal(dec("10")))
	require.Len(t, payload.Details, 2)
	assert.Equal(t, KindClass, payload.Details[0].Status)
	assert.Equal(t, KindBonus, payload.Details[1].Status)

	require.Len(t, mailSvc.sent, 1)
	msg := mailSvc.sent[0]
	assert.Equal(t, "ana@academia.test", msg.To[0].Address)
	assert.Equal(t, statementTemplate, msg.TemplateName)
	data, ok := msg.TemplateData.(statementData)
	require.True(t, ok)
	assert.Equal(t, "65.00", data.Total)
	assert.Len(t, data.Lines, 2)

	require.Len(t, msg.Attachments, 1)
	at := msg.Attachments[0]
	assert.Equal(t, statementFilename, at.Filename)
	assert.Equal(t, "text/csv", at.ContentType)
	csv, err := base64.StdEncoding.DecodeString(at.Content.String())
	require.NoError(t, err)
	assert.Contains(t, string(csv), "kind,enrollment_id,hours_taught,pay_per_hour,description,amount")
	assert.Contains(t, string(csv), "class,7,3,20.00,,60.00")
	assert.Contains(t, string(csv), "bonus,,,,bonus,15.00")
	assert.Contains(t, string(csv), "discount,,,,,-10.00")
	assert.Contains(t, string(csv), "total,,,,,65.00")
	assert.Empty(t, logger.errors)
}

func TestService_Create_usesBackendTotals(t *testing.T) {
	mailSvc := new(mailMock)
	svc := NewService(backendTotalsRepo{}, professors, mailSvc, new(loggerMock))

	_, err := svc.Create(context.Background(), newPayout(1))
	require.NoError(t, err)
	require.Len(t, mailSvc.sent, 1)
	assert.Equal(t, "64.00", mailSvc.sent[0].TemplateData.(statementData).Total)
}

type backendTotalsRepo struct{}

func (backendTotalsRepo) CreatePayout(_ context.Context, payload Payload) (Payout, error) {
	return Payout{ID: 9, Subtotal: dec("75"), Discount: dec("11"), Total: dec("64")}, nil
}

func TestService_Create_notification(t *testing.T) {
	tests := []struct {
		name        string
		professorID int
		wantSent    int
		wantLogged  int
	}{
		{name: "professor without email", professorID: 2, wantSent: 0, wantLogged: 0},
		{name: "unknown professor", professorID: 3, wantSent: 0, wantLogged: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailSvc := new(mailMock)
			logger := new(loggerMock)
			svc := NewService(new(repoMock), professors, mailSvc, logger)

			_, err := svc.Create(context.Background(), newPayout(tt.professorID))
			require.NoError(t, err)
			assert.Len(t, mailSvc.sent, tt.wantSent)
			assert.Len(t, logger.errors, tt.wantLogged)
		})
	}
}

func TestService_Create_backendError(t *testing.T) {
	backendErr := core.NewBackendError(422, "api/payouts", "professor is inactive")
	mailSvc := new(mailMock)
	svc := NewService(&repoMock{err: backendErr}, professors, mailSvc, new(loggerMock))

	_, err := svc.Create(context.Background(), newPayout(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, backendErr))
	assert.Empty(t, mailSvc.sent)
}
