package handlers

import (
	"net/http"

	"library_backend/internal/logger"
	"library_backend/internal/service"

	"github.com/gin-gonic/gin"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/graph-gophers/graphql-transport-ws/graphqlws"
)

// Handler wires the HTTP layer to the GraphQL schema and services.
type Handler struct {
	services *service.Service
	schema   *graphql.Schema
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, schema *graphql.Schema, log *logger.Logger) *Handler {
	return &Handler{services: services, schema: schema, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", h.health)
	router.GET("/playground", h.playground)

	// Single GraphQL endpoint; queries and mutations over POST, the
	// subscription websocket over GET (graphql-ws protocol, falling back
	// to the plain handler for non-upgrade requests).
	query := &relay.Handler{Schema: h.schema}
	router.POST("/graphql", h.currentUserMiddleware, gin.WrapH(query))
	router.GET("/subscriptions", gin.WrapH(graphqlws.NewHandlerFunc(h.schema, query)))

	return router
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
