package web

import (
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"enigmaCrackerBackend/internal/adapter/loader"
	"enigmaCrackerBackend/internal/core/algorithm"
	"enigmaCrackerBackend/internal/core/domain"
	"enigmaCrackerBackend/internal/core/session"
	"enigmaCrackerBackend/internal/pkg/logging"
	"enigmaCrackerBackend/internal/port"
	"enigmaCrackerBackend/internal/utils/random"
)

type EncryptRequest struct {
	// Code is the machine code to start from. Empty picks a random one.
	Code string `json:"code"`
	Text string `json:"text" binding:"required"`
}

type EncryptResponse struct {
	Code        string `json:"code"`
	CurrentCode string `json:"currentCode"`
	Output      string `json:"output"`
}

type CrackingRequest struct {
	Ciphertext string           `json:"ciphertext" binding:"required"`
	Level      domain.TaskLevel `json:"level"`

	// Code supplies the rotors and reflector of the level's default space.
	// It may be left out when Space is given or Full is set.
	Code  string                 `json:"code"`
	Space *domain.CandidateSpace `json:"space,omitempty"`
	Full  bool                   `json:"full"`

	Agents         int   `json:"agents"`
	MissionSize    int64 `json:"missionSize"`
	TimeoutSeconds int   `json:"timeoutSeconds"`

	// Async returns the job at once instead of waiting for the result.
	Async bool `json:"async"`
}

// WebHandler serves one machine. Every request works on its own session, so
// handlers share no cipher state.
type WebHandler struct {
	crackingService port.CrackingService
	machine         *loader.Machine
	logger          *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

func NewWebHandler(svc port.CrackingService, m *loader.Machine, logger *zap.Logger) *WebHandler {
	return &WebHandler{
		crackingService: svc,
		machine:         m,
		logger:          logging.OrNop(logger),
		rng:             random.New(0),
	}
}

func (h *WebHandler) GetSpecification(c *gin.Context) {
	sess := session.New(h.machine.Catalog)
	if code := c.Query("code"); code != "" {
		var err error
		if sess, err = session.FromCode(h.machine.Catalog, code); err != nil {
			respondError(c, err)
			return
		}
	}
	spec, err := sess.Specification()
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, spec)
}

func (h *WebHandler) Encrypt(c *gin.Context) {
	var req EncryptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	sess, err := h.session(req.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	out, err := sess.Encrypt(req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, EncryptResponse{
		Code:        sess.InitialCode(),
		CurrentCode: sess.CurrentCode(),
		Output:      out,
	})
}

func (h *WebHandler) StartCracking(c *gin.Context) {
	var req CrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Code == "" && req.Space == nil && !req.Full {
		badRequest(c, "code is required unless a space is given")
		return
	}

	template, err := h.session(req.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	space := req.Space
	if space == nil && req.Full {
		full := algorithm.FullSpace(h.machine.Catalog)
		space = &full
	}

	crack := port.CrackRequest{
		Task: domain.SearchTask{
			Ciphertext: req.Ciphertext,
			Level:      req.Level,
			Space:      space,
		},
		Template:    template,
		Dictionary:  h.machine.Dictionary,
		Agents:      req.Agents,
		MissionSize: req.MissionSize,
		Timeout:     time.Duration(req.TimeoutSeconds) * time.Second,
	}
	if crack.Agents == 0 {
		crack.Agents = h.machine.Agents
	}

	if req.Async {
		job, err := h.crackingService.StartCracking(c.Request.Context(), crack)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusAccepted, job)
		return
	}

	result, err := h.crackingService.Crack(c.Request.Context(), crack)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, result)
}

func (h *WebHandler) GetJob(c *gin.Context) {
	job, err := h.crackingService.GetJobStatus(c.Request.Context(), c.Param("jobId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, job)
}

func (h *WebHandler) GetStatistics(c *gin.Context) {
	stats, err := h.crackingService.GetStatistics(c.Request.Context(), c.Param("jobId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, stats)
}

func (h *WebHandler) ListJobs(c *gin.Context) {
	filter := port.JobFilter{Status: domain.JobStatus(strings.ToUpper(c.Query("status")))}
	if s := c.Query("level"); s != "" {
		level, err := domain.ParseTaskLevel(s)
		if err != nil {
			respondError(c, err)
			return
		}
		filter.Level = level
	}
	for key, dst := range map[string]*int{"limit": &filter.Limit, "offset": &filter.Offset} {
		if s := c.Query(key); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 {
				badRequest(c, key+" must be a non-negative integer")
				return
			}
			*dst = n
		}
	}

	jobs, err := h.crackingService.ListJobs(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, jobs)
}

func (h *WebHandler) StopCracking(c *gin.Context) {
	jobID := c.Param("jobId")
	if err := h.crackingService.StopCracking(c.Request.Context(), jobID); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"message": "Cracking job stopped",
		"jobId":   jobID,
	})
}

// session opens a session at code, or at a random code when code is empty.
func (h *WebHandler) session(code string) (*session.Session, error) {
	if code != "" {
		return session.FromCode(h.machine.Catalog, code)
	}
	h.mu.Lock()
	settings := session.RandomCode(h.machine.Catalog, h.rng)
	h.mu.Unlock()

	sess := session.New(h.machine.Catalog)
	if err := sess.SetCode(settings); err != nil {
		return nil, err
	}
	return sess, nil
}
