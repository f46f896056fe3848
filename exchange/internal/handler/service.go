package handler

import (
	"context"

	"github.com/Astemirdum/book-exchange/exchange/internal/model"
	"github.com/Astemirdum/book-exchange/exchange/internal/service"
	"github.com/Astemirdum/book-exchange/pkg/auth"
	"github.com/google/uuid"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type ExchangeService interface {
	CreateExchange(ctx context.Context, requesterID uuid.UUID, req model.CreateExchangeRequest) (model.CreateExchangeResponse, error)
	AcceptExchange(ctx context.Context, userID, exchangeID uuid.UUID) (model.Exchange, error)
	DeclineExchange(ctx context.Context, userID, exchangeID uuid.UUID, req model.DeclineRequest) (model.DeclineResponse, error)
	ConfirmExchange(ctx context.Context, userID, exchangeID uuid.UUID, req model.ConfirmRequest) (model.ConfirmResponse, error)
	CancelExchange(ctx context.Context, userID, exchangeID uuid.UUID, req model.CancelRequest) (model.Exchange, error)
	GetExchange(ctx context.Context, userID, exchangeID uuid.UUID) (model.Exchange, error)
	ListExchanges(ctx context.Context, userID uuid.UUID, f model.ExchangeFilter) (model.ListExchanges, error)
}

type ReportService interface {
	CreateReport(ctx context.Context, reporterID uuid.UUID, req model.CreateReportRequest) (model.Report, error)
	GetReport(ctx context.Context, actor auth.Identity, reportID uuid.UUID) (model.Report, error)
	ListReports(ctx context.Context, actor auth.Identity, f model.ReportFilter) (model.ListReports, error)
	UpdateReportStatus(ctx context.Context, actor auth.Identity, reportID uuid.UUID, status model.ReportStatus) (model.Report, error)
	ResolveReport(ctx context.Context, actor auth.Identity, reportID uuid.UUID, req model.ResolveReportRequest) (model.ResolveResponse, error)
}

type UserService interface {
	Points(ctx context.Context, userID uuid.UUID, p model.Paging) (model.PointsSummary, error)
	TrustScore(ctx context.Context, userID uuid.UUID) (model.TrustScore, error)
	AssessUser(ctx context.Context, userID uuid.UUID) (model.Assessment, error)
}

var (
	_ ExchangeService = (*service.Service)(nil)
	_ ReportService   = (*service.Service)(nil)
	_ UserService     = (*service.Service)(nil)
)
