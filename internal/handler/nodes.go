package handler

import (
	"net/http"

	"github.com/osse101/GatherNode_Go/internal/authority"
	"github.com/osse101/GatherNode_Go/internal/domain"
	"github.com/osse101/GatherNode_Go/internal/logger"
)

// DepletedNodesResponse lists the nodes currently depleted on the server
type DepletedNodesResponse struct {
	Count int                      `json:"count"`
	Nodes []domain.DepletionRecord `json:"nodes"`
}

// RespawnRequest identifies a node to restore. Coordinates are pointers so
// that a zero coordinate is distinguishable from a missing one.
type RespawnRequest struct {
	X *int `json:"x" validate:"required"`
	Y *int `json:"y" validate:"required"`
}

// HandleListDepleted handles listing depleted nodes
// @Summary List depleted nodes
// @Description Returns every node the server currently holds as depleted
// @Tags nodes
// @Produce json
// @Success 200 {object} DepletedNodesResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/nodes/depleted [get]
func HandleListDepleted(svc authority.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		nodes, err := svc.DepletedNodes(r.Context())
		if err != nil {
			respondServiceError(w, log, ErrMsgListDepletedFailed, err)
			return
		}
		if nodes == nil {
			nodes = []domain.DepletionRecord{}
		}

		respondJSON(w, http.StatusOK, DepletedNodesResponse{Count: len(nodes), Nodes: nodes})
	}
}

// HandleForceRespawn handles restoring a depleted node immediately
// @Summary Force a node respawn
// @Description Clears a node's depletion and broadcasts the respawn
// @Tags nodes
// @Accept json
// @Produce json
// @Param request body RespawnRequest true "Node coordinates"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/nodes/respawn [post]
func HandleForceRespawn(svc authority.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RespawnRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Force respawn"); err != nil {
			return
		}

		log := logger.FromContext(r.Context())
		key := domain.NewNodeKey(*req.X, *req.Y)

		rec, err := svc.ForceRespawn(r.Context(), key)
		if err != nil {
			respondServiceError(w, log, "Force respawn", err)
			return
		}

		log.Info(LogMsgForceRespawn, "node", key.String(), "resource", rec.ResourceType)
		respondJSON(w, http.StatusOK, DataResponse{
			Message: "Node respawned",
			Data:    rec,
		})
	}
}
