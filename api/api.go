package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"factorlab/internal/db/models/postgres/public/model"
	"factorlab/internal/domain"
	"factorlab/internal/expression"
	"factorlab/internal/logger"
	"factorlab/internal/metrics"
	"factorlab/internal/repository"
	"factorlab/internal/service"
	l1_service "factorlab/internal/service/l1"
	l3_service "factorlab/internal/service/l3"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// BenchmarkService is satisfied by internal.BenchmarkHandler.
type BenchmarkService interface {
	GetIntraPeriodChange(ctx context.Context, symbol string, start, end time.Time, granularity domain.RebalanceInterval) (map[time.Time]float64, error)
}

type ApiHandler struct {
	Db *sql.DB

	BacktestService   l3_service.BacktestService
	StrategyService   l3_service.StrategyService
	InvestmentService l3_service.InvestmentService
	BondService       l1_service.BondService
	BenchmarkHandler  BenchmarkService
	EmailService      service.EmailService

	UserStrategyRepository    repository.UserStrategyRepository
	ContactRepository         repository.ContactRepository
	GptRepository             repository.GptRepository
	ApiRequestRepository      repository.ApiRequestRepository
	LatencyTrackingRepository repository.LatencyTrackingRepository
	AssetUniverseRepository   repository.AssetUniverseRepository
	StatsRepository           repository.StatsRepository
	UserAccountRepository     repository.UserAccountRepository

	// bearer token verification
	JwtSecret        string
	SupabaseUrl      string
	GoogleAuthClient GoogleAuthClient

	Metrics *metrics.Registry
	// zero disables the per-request backtest deadline
	BacktestTimeout time.Duration
}

func int64Ptr(i int64) *int64 {
	return &i
}
func int32Ptr(i int32) *int32 {
	return &i
}
func strPtr(s string) *string {
	return &s
}

func (m ApiHandler) NewRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(m.requestContextMiddleware)
	router.Use(m.metricsMiddleware)
	router.Use(m.logRequestMiddlware)
	router.Use(m.authMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to factorlab"})
	})
	if m.Metrics != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Metrics, promhttp.HandlerOpts{})))
	}

	router.POST("/backtest", m.backtest)
	router.POST("/backtestBondPortfolio", m.backtestBondPortfolio)
	router.POST("/benchmark", m.benchmark)
	router.POST("/constructFactorEquation", m.constructFactorEquation)
	router.GET("/assetUniverses", m.getAssetUniverses)
	router.GET("/usageStats", m.getUsageStats)
	router.POST("/contact", m.contact)

	router.GET("/savedStrategies", m.getSavedStrategies)
	router.POST("/isStrategyBookmarked", m.isStrategyBookmarked)
	router.POST("/bookmarkStrategy", m.bookmarkStrategy)
	router.GET("/publishedStrategies", m.getPublishedStrategies)

	router.POST("/investInStrategy", m.investInStrategy)
	router.GET("/activeInvestments", m.getInvestments)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	return m.NewRouter().Run(fmt.Sprintf(":%d", port))
}

// statusForError is the single place errors become HTTP status codes.
func statusForError(err error) int {
	var pe *expression.ParseError
	switch {
	case domain.IsValidationError(err), errors.As(err, &pe):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, qrm.ErrNoRows):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, statusForError(err))
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	log := logger.FromContext(c.Request.Context())
	if code >= 500 {
		log.Errorw("request failed", "error", err.Error(), "status", code)
	} else {
		log.Infow("request rejected", "error", err.Error(), "status", code)
	}

	body := gin.H{
		"error": err.Error(),
	}
	var pe *expression.ParseError
	var ve domain.ValidationError
	if errors.As(err, &pe) {
		body["reason"] = pe.Reason
	} else if errors.As(err, &ve) {
		body["reason"] = ve.Reason
	}
	c.AbortWithStatusJSON(code, body)
}

// requireUserAccountID returns the caller's account, or ErrUnauthenticated
// for anonymous requests.
func requireUserAccountID(c *gin.Context) (uuid.UUID, error) {
	v, ok := c.Get(userAccountIDKey)
	if !ok {
		return uuid.Nil, domain.ErrUnauthenticated
	}
	id, ok := v.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("misformatted user account id: %w", domain.ErrUnauthenticated)
	}
	return id, nil
}

func requestIDFromContext(c *gin.Context) *uuid.UUID {
	v, ok := c.Get(requestIDKey)
	if !ok {
		return nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}

const requestIDKey = "requestID"

func (m ApiHandler) requestContextMiddleware(c *gin.Context) {
	requestID := uuid.New()
	c.Set(requestIDKey, requestID)
	c.Header("X-Request-ID", requestID.String())

	log := logger.FromContext(c.Request.Context()).With(
		"requestId", requestID.String(),
		"route", c.Request.URL.Path,
	)
	c.Request = c.Request.WithContext(logger.NewContext(c.Request.Context(), log))
	c.Next()
}

func (m ApiHandler) metricsMiddleware(c *gin.Context) {
	m.Metrics.InFlightInc()
	start := time.Now()
	c.Next()
	m.Metrics.InFlightDec()

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	m.Metrics.RecordRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start).Seconds())
}

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r responseBodyWriter) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// logRequestMiddlware stores every request and its response in api_request.
// Logging failures never fail the request.
func (m ApiHandler) logRequestMiddlware(c *gin.Context) {
	if m.ApiRequestRepository == nil || c.Request.URL.Path == "/metrics" {
		c.Next()
		return
	}
	ctx := c.Request.Context()
	log := logger.FromContext(ctx)

	w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
	c.Writer = w

	body, err := c.GetRawData()
	if err != nil {
		log.Warnf("failed to get raw data: %v", err)
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	type userIdBody struct {
		UserID string `json:"userID"`
	}
	var userID *uuid.UUID
	if len(body) > 0 {
		reqBody := userIdBody{}
		if err := json.Unmarshal(body, &reqBody); err == nil {
			if id, err := uuid.Parse(reqBody.UserID); err == nil {
				userID = &id
			}
		}
	}

	start := time.Now().UTC()
	in := model.APIRequest{
		UserID:    userID,
		IPAddress: strPtr(c.ClientIP()),
		Method:    c.Request.Method,
		Route:     c.Request.URL.Path,
		StartTs:   start,
	}
	if id := requestIDFromContext(c); id != nil {
		in.RequestID = *id
	}
	if len(body) > 0 {
		in.RequestBody = strPtr(string(body))
	}
	req, err := m.ApiRequestRepository.Add(ctx, m.Db, in)
	if err != nil {
		log.Warnf("failed to log request: %v", err)
	}

	c.Next()

	if req != nil {
		req.DurationMs = int64Ptr(time.Since(start).Milliseconds())
		req.StatusCode = int32Ptr(int32(c.Writer.Status()))
		req.ResponseBody = strPtr(w.body.String())
		if v, ok := c.Get(userAccountIDKey); ok {
			if id, ok := v.(uuid.UUID); ok {
				req.UserAccountID = &id
			}
		}

		// the request context may already be past its deadline
		err = m.ApiRequestRepository.Update(context.WithoutCancel(ctx), m.Db, *req)
		if err != nil {
			log.Warnf("failed to update request log: %v", err)
		}
	}
}
