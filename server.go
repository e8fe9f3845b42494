package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"git.fiblab.net/sim/accessibility/network"
	"git.fiblab.net/sim/accessibility/objective"
)

// 指标查询与流量更新服务，指标在启动时算好（流量不影响指标）
type MetricServer struct {
	net     *network.Network
	obj     *objective.Objective
	metrics []float64
}

func NewMetricServer(ev *Evaluation) *MetricServer {
	return &MetricServer{
		net:     ev.Net,
		obj:     ev.Obj,
		metrics: ev.Metrics,
	}
}

type FlowUpdate struct {
	// 核心弧下标
	ID   int     `json:"id"`
	Flow float64 `json:"flow"`
}

// 取请求头中的X-Request-ID，没有则生成并回写
func requestID(c *gin.Context) string {
	id := c.GetHeader("X-Request-ID")
	if id == "" {
		id = uuid.NewString()
	}
	c.Header("X-Request-ID", id)
	return id
}

func (s *MetricServer) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/health", s.health)
	r.GET("/stop-metrics", s.stopMetrics)
	r.GET("/line-metrics", s.lineMetrics)
	r.GET("/loading-factors", s.loadingFactors)
	r.GET("/flows/:id", s.getFlow)
	r.POST("/flows", s.setFlows)
	return r
}

func (s *MetricServer) health(c *gin.Context) {
	requestID(c)
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"stops":  len(s.net.StopNodes),
		"lines":  len(s.net.Lines),
	})
}

func (s *MetricServer) stopMetrics(c *gin.Context) {
	requestID(c)
	c.JSON(http.StatusOK, stopMetricRows(s.net, s.metrics))
}

func (s *MetricServer) lineMetrics(c *gin.Context) {
	requestID(c)
	c.JSON(http.StatusOK, lineMetricRows(s.net, s.metrics))
}

func (s *MetricServer) loadingFactors(c *gin.Context) {
	requestID(c)
	factors, maxLoad, meanCore, meanLine := loadingFactorStats(s.net)
	c.JSON(http.StatusOK, gin.H{
		"max":            maxLoad,
		"mean_core_arcs": meanCore,
		"mean_line_arcs": meanLine,
		"factors":        factors,
	})
}

func (s *MetricServer) getFlow(c *gin.Context) {
	requestID(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "core arc index must be an integer"})
		return
	}
	flow, err := s.net.Flow(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, FlowUpdate{ID: id, Flow: flow})
}

func (s *MetricServer) setFlows(c *gin.Context) {
	rid := requestID(c)
	var updates []FlowUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		log.Warnf("request %s: bad flow update body: %v", rid, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	flows := make(map[int]float64, len(updates))
	for _, u := range updates {
		flows[u.ID] = u.Flow
	}
	if err := s.net.SetFlows(flows); err != nil {
		log.Warnf("request %s: flow update rejected: %v", rid, err)
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	log.Debugf("request %s: %d flows updated", rid, len(flows))
	c.JSON(http.StatusOK, gin.H{"updated": len(flows)})
}
