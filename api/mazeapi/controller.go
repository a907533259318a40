package mazeapi

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/beka-birhanu/dfs-maze/api/identity"
	"github.com/beka-birhanu/dfs-maze/service"
	"github.com/beka-birhanu/dfs-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MazeController exposes maze session operations over HTTP: creating a
// session, advancing its generation one step or in bulk, reading the
// whole grid, and discarding it.
type MazeController struct {
	sessions  i.MazeSessionManager
	tokenizer i.Tokenizer
	tokenTTL  time.Duration
}

// NewMazeController initializes a MazeController.
func NewMazeController(sessions i.MazeSessionManager, tokenizer i.Tokenizer, tokenTTL time.Duration) (*MazeController, error) {
	if sessions == nil {
		return nil, errors.New("session manager is nil")
	}
	if tokenizer == nil {
		return nil, errors.New("tokenizer is nil")
	}

	return &MazeController{
		sessions:  sessions,
		tokenizer: tokenizer,
		tokenTTL:  tokenTTL,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("/", mc.create)
	}
}

// RegisterProtected registers routes that require the session token issued
// at creation time.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("/:ID/step", mc.step)
		mazes.POST("/:ID/generate", mc.generate)
		mazes.GET("/:ID", mc.state)
		mazes.DELETE("/:ID", mc.remove)
	}
}

// create handles session creation requests and issues the session token.
func (mc *MazeController) create(ctx *gin.Context) {
	var request CreateMazeRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var id uuid.UUID
	var err error
	if request.Seed != nil {
		id, err = mc.sessions.CreateFromSeed(ctx, request.Width, request.Height, *request.Seed)
	} else {
		id, err = mc.sessions.Create(ctx, request.Width, request.Height)
	}
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDimensions):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrTooManySessions):
			ctx.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while creating maze"})
		}
		return
	}

	token, err := mc.tokenizer.Generate(map[string]interface{}{
		identity.SessionIDClaim: id.String(),
	}, mc.tokenTTL)
	if err != nil {
		_ = mc.sessions.Remove(ctx, id)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while issuing session token"})
		return
	}

	ctx.JSON(http.StatusCreated, &CreateMazeResponse{
		ID:     id.String(),
		Token:  token,
		Width:  request.Width,
		Height: request.Height,
	})
}

// step advances the session's traversal by a single move.
func (mc *MazeController) step(ctx *gin.Context) {
	id, ok := mc.authorizedSessionID(ctx)
	if !ok {
		return
	}

	done, err := mc.sessions.Step(ctx, id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no maze session"})
		return
	}

	ctx.JSON(http.StatusOK, &ProgressResponse{Done: done})
}

// generate runs the session's traversal, optionally bounded by a budget.
func (mc *MazeController) generate(ctx *gin.Context) {
	id, ok := mc.authorizedSessionID(ctx)
	if !ok {
		return
	}

	// The body is optional: absent or empty means no step budget.
	var request GenerateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	done, err := mc.sessions.Generate(ctx, id, request.Limit)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no maze session"})
		return
	}

	ctx.JSON(http.StatusOK, &ProgressResponse{Done: done})
}

// state returns the session's dimensions, completion flag and the packed
// cell grid in one response.
func (mc *MazeController) state(ctx *gin.Context) {
	id, ok := mc.authorizedSessionID(ctx)
	if !ok {
		return
	}

	snapshot, err := mc.sessions.Snapshot(ctx, id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no maze session"})
		return
	}

	ctx.JSON(http.StatusOK, &MazeStateResponse{
		Width:  snapshot.Width,
		Height: snapshot.Height,
		Done:   snapshot.Done,
		Cells:  snapshot.Cells,
	})
}

// remove discards the session.
func (mc *MazeController) remove(ctx *gin.Context) {
	id, ok := mc.authorizedSessionID(ctx)
	if !ok {
		return
	}

	if err := mc.sessions.Remove(ctx, id); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no maze session"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// authorizedSessionID parses the :ID route parameter and checks it against
// the session claim carried by the caller's token. On failure it writes
// the error response and returns false.
func (mc *MazeController) authorizedSessionID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "id not found"})
		return uuid.Nil, false
	}

	claimedID, ok := identity.SessionID(ctx)
	if !ok || claimedID != id.String() {
		ctx.Status(http.StatusForbidden) // Token does not cover this session.
		ctx.Abort()
		return uuid.Nil, false
	}

	return id, true
}
