package services

import (
	"context"
	"dbconsultor-ai/internal/apis/dtos"
	"dbconsultor-ai/internal/constants"
	"dbconsultor-ai/internal/metrics"
	"dbconsultor-ai/internal/models"
	"dbconsultor-ai/internal/repositories"
	"dbconsultor-ai/internal/utils"
	"dbconsultor-ai/pkg/dbmanager"
	"dbconsultor-ai/pkg/llm"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

// DatabaseManager is the part of dbmanager.Manager the consultation needs.
type DatabaseManager interface {
	IsConfigured(backend string) bool
	IsConnected(backend string) bool
	GetConnection(ctx context.Context, backend string) (*dbmanager.Connection, error)
	ListTables(ctx context.Context, backend string) ([]string, error)
	DescribeSchema(ctx context.Context, backend string) (string, error)
	ExecuteQuery(ctx context.Context, backend, query string) (*dbmanager.QueryExecutionResult, error)
}

type ConsultConfig struct {
	NarrationMode string
}

type ConsultService interface {
	HandleQuery(ctx context.Context, req *dtos.ConsultRequest) (*dtos.ConsultResponse, uint32, error)
	ListBackends(ctx context.Context) (*dtos.BackendListResponse, uint32, error)
	ListTables(ctx context.Context, backend string) (*dtos.TablesResponse, uint32, error)
	RecentQueries(ctx context.Context, limit int) (*dtos.QueryLogResponse, uint32, error)
}

type consultService struct {
	dbManager   DatabaseManager
	synthesizer *SQLSynthesizer
	narrator    *ResultNarrator
	queryLog    repositories.QueryLogRepository
}

func NewConsultService(dbManager DatabaseManager, llmClient llm.Client, queryLog repositories.QueryLogRepository, config ConsultConfig) ConsultService {
	if queryLog == nil {
		queryLog = repositories.NewNoopQueryLogRepository()
	}
	log.Printf("🚀 Initialized Service : Consult (narration: %s)", config.NarrationMode)
	return &consultService{
		dbManager:   dbManager,
		synthesizer: NewSQLSynthesizer(llmClient),
		narrator:    NewResultNarrator(llmClient, config.NarrationMode),
		queryLog:    queryLog,
	}
}

// HandleQuery answers one question: introspect, synthesize, execute,
// narrate and reconstruct, in that order. The response is always filled in;
// on failure its Error explains what went wrong and the returned error
// carries the same message.
func (s *consultService) HandleQuery(ctx context.Context, req *dtos.ConsultRequest) (*dtos.ConsultResponse, uint32, error) {
	startTime := time.Now()
	question := strings.TrimSpace(req.Question)
	resp := &dtos.ConsultResponse{Backend: req.Backend}
	entry := models.NewQueryLog(req.Backend, question)

	fail := func(consultErr *dtos.ConsultError) (*dtos.ConsultResponse, uint32, error) {
		resp.Error = consultErr
		entry.ErrorKind = consultErr.Kind
		entry.Outcome = constants.OutcomeError
		if consultErr.Kind == constants.ErrorKindConfigMissing {
			entry.Outcome = constants.OutcomeWarning
		}
		s.finish(ctx, entry, startTime)
		return resp, StatusForKind(consultErr.Kind), errors.New(consultErr.Message)
	}

	if question == "" {
		return fail(&dtos.ConsultError{Kind: constants.ErrorKindEmptyQuestion, Message: constants.MessageEmptyQuestion})
	}
	if !constants.IsSupportedDatabaseType(req.Backend) {
		return fail(&dtos.ConsultError{Kind: constants.ErrorKindUnsupportedBackend, Message: fmt.Sprintf(constants.MessageUnsupportedBackend, req.Backend)})
	}

	if _, err := s.dbManager.GetConnection(ctx, req.Backend); err != nil {
		log.Printf("ConsultService -> HandleQuery -> connection error: %v", err)
		return fail(classifyConnectionError(req.Backend, err))
	}

	stageStart := time.Now()
	schema, err := s.dbManager.DescribeSchema(ctx, req.Backend)
	metrics.ObserveStage("introspect", time.Since(stageStart))
	if err != nil {
		log.Printf("ConsultService -> HandleQuery -> schema error: %v", err)
		return fail(classifyStageError(err))
	}

	query, err := s.synthesizer.Synthesize(ctx, schema, question, req.History)
	if err != nil {
		log.Printf("ConsultService -> HandleQuery -> synthesis error: %v", err)
		return fail(classifyStageError(err))
	}
	resp.SQL = query
	entry.SQL = query

	stageStart = time.Now()
	result, err := s.dbManager.ExecuteQuery(ctx, req.Backend, query)
	metrics.ObserveStage("execute", time.Since(stageStart))
	if err != nil {
		log.Printf("ConsultService -> HandleQuery -> execution error: %v", err)
		return fail(classifyStageError(err))
	}
	entry.RowCount = len(result.Rows)

	narrative, err := s.narrator.Narrate(ctx, schema, question, query, result)
	if err != nil {
		log.Printf("ConsultService -> HandleQuery -> narration error: %v", err)
		return fail(classifyStageError(err))
	}
	resp.Narrative = narrative

	stageStart = time.Now()
	table := utils.ReconstructTable(result.ResultText, query)
	metrics.ObserveStage("reconstruct", time.Since(stageStart))
	resp.Table = &dtos.TableView{
		Columns: table.Columns,
		Rows:    table.Rows,
		Notice:  table.Notice,
		Warning: table.Warning,
		Raw:     table.Raw,
	}

	entry.Outcome = constants.OutcomeSuccess
	if table.Warning != "" {
		entry.Outcome = constants.OutcomeWarning
	}
	s.finish(ctx, entry, startTime)
	log.Printf("ConsultService -> HandleQuery -> %s", constants.MessageQueryFinished)
	return resp, http.StatusOK, nil
}

// finish records metrics and the query log entry. Logging failures never
// reach the caller.
func (s *consultService) finish(ctx context.Context, entry *models.QueryLog, startTime time.Time) {
	entry.DurationMs = time.Since(startTime).Milliseconds()

	backendLabel := entry.Backend
	if !constants.IsSupportedDatabaseType(backendLabel) {
		backendLabel = "unknown"
	}
	metrics.ObserveQuery(backendLabel, entry.Outcome)

	if err := s.queryLog.Record(context.WithoutCancel(ctx), entry); err != nil {
		log.Printf("ConsultService -> finish -> failed to record query log: %v", err)
	}
}

func (s *consultService) ListBackends(_ context.Context) (*dtos.BackendListResponse, uint32, error) {
	backends := make([]dtos.BackendStatus, 0, len(constants.SupportedDatabaseTypes))
	for _, backend := range constants.SupportedDatabaseTypes {
		backends = append(backends, dtos.BackendStatus{
			Name:        backend,
			DisplayName: constants.GetDatabaseDisplayName(backend),
			Configured:  s.dbManager.IsConfigured(backend),
			Connected:   s.dbManager.IsConnected(backend),
		})
	}
	return &dtos.BackendListResponse{Backends: backends}, http.StatusOK, nil
}

// ListTables lists the backend's tables. When the backend cannot be reached
// the list is empty and Error says why.
func (s *consultService) ListTables(ctx context.Context, backend string) (*dtos.TablesResponse, uint32, error) {
	resp := &dtos.TablesResponse{Backend: backend, Tables: []string{}}

	if !constants.IsSupportedDatabaseType(backend) {
		resp.Error = &dtos.ConsultError{Kind: constants.ErrorKindUnsupportedBackend, Message: fmt.Sprintf(constants.MessageUnsupportedBackend, backend)}
		return resp, StatusForKind(resp.Error.Kind), errors.New(resp.Error.Message)
	}

	if _, err := s.dbManager.GetConnection(ctx, backend); err != nil {
		log.Printf("ConsultService -> ListTables -> connection error: %v", err)
		resp.Error = classifyConnectionError(backend, err)
		return resp, StatusForKind(resp.Error.Kind), errors.New(resp.Error.Message)
	}

	tables, err := s.dbManager.ListTables(ctx, backend)
	if err != nil {
		log.Printf("ConsultService -> ListTables -> error: %v", err)
		resp.Error = &dtos.ConsultError{Kind: constants.ErrorKindExecutionFailed, Message: constants.MessageNoTables}
		return resp, StatusForKind(resp.Error.Kind), errors.New(resp.Error.Message)
	}

	resp.Tables = append(resp.Tables, tables...)
	resp.Message = fmt.Sprintf(constants.MessageConnected, constants.GetDatabaseDisplayName(backend))
	if len(resp.Tables) == 0 {
		resp.Notice = constants.MessageNoTables
	}
	return resp, http.StatusOK, nil
}

func (s *consultService) RecentQueries(ctx context.Context, limit int) (*dtos.QueryLogResponse, uint32, error) {
	entries, err := s.queryLog.Recent(ctx, limit)
	if err != nil {
		log.Printf("ConsultService -> RecentQueries -> error: %v", err)
		return nil, http.StatusInternalServerError, err
	}

	queries := make([]dtos.QueryLogEntry, 0, len(entries))
	for _, entry := range entries {
		queries = append(queries, dtos.QueryLogEntry{
			ID:         entry.ID,
			Backend:    entry.Backend,
			Question:   entry.Question,
			SQL:        entry.SQL,
			Outcome:    entry.Outcome,
			ErrorKind:  entry.ErrorKind,
			RowCount:   entry.RowCount,
			DurationMs: entry.DurationMs,
			CreatedAt:  entry.CreatedAt,
		})
	}
	return &dtos.QueryLogResponse{Enabled: s.queryLog.Enabled(), Queries: queries}, http.StatusOK, nil
}
