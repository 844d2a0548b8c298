package handlers

import (
	"context"

	"github.com/hqo/showcase/internal/gallery"
	"github.com/hqo/showcase/internal/search"
	"github.com/hqo/showcase/internal/server/dto"
)

// IdeaHandler handles the idea gallery.
type IdeaHandler struct {
	ideas *gallery.IdeaService
}

// NewIdeaHandler creates a new idea handler.
func NewIdeaHandler(ideas *gallery.IdeaService) *IdeaHandler {
	return &IdeaHandler{ideas: ideas}
}

// ListIdeas returns the ideas matching the filters, newest first.
func (h *IdeaHandler) ListIdeas(ctx context.Context, req *dto.ListIdeasRequest) (*dto.ListIdeasResponse, error) {
	ideas := h.ideas.List(ctx, search.Query{Text: req.Query, Tags: req.Tags})
	resp := &dto.ListIdeasResponse{Ideas: make([]dto.Idea, 0, len(ideas))}
	for _, i := range ideas {
		resp.Ideas = append(resp.Ideas, ideaToDTO(i))
	}
	return resp, nil
}

// ListTags returns every tag used by an idea.
func (h *IdeaHandler) ListTags(ctx context.Context, req *dto.ListIdeaTagsRequest) (*dto.TagsResponse, error) {
	return &dto.TagsResponse{Tags: nonNil(h.ideas.Tags(ctx))}, nil
}

// CreateIdea adds an idea.
func (h *IdeaHandler) CreateIdea(ctx context.Context, req *dto.CreateIdeaRequest) (*dto.Idea, error) {
	idea, err := h.ideas.Add(ctx, gallery.NewIdea{
		Title:       req.Title,
		Description: req.Description,
		Products:    req.Products,
		Tags:        req.Tags,
		Link:        req.Link,
	})
	if err != nil {
		return nil, toAPIError(err, "Failed to store idea")
	}
	out := ideaToDTO(idea)
	return &out, nil
}

// DeleteIdea removes an idea.
func (h *IdeaHandler) DeleteIdea(ctx context.Context, req *dto.DeleteIdeaRequest) (*dto.OkResponse, error) {
	if err := h.ideas.Delete(ctx, req.ID.String()); err != nil {
		return nil, toAPIError(err, "Failed to delete idea")
	}
	return &dto.OkResponse{Ok: true}, nil
}

// UpvoteHandler handles project upvotes.
type UpvoteHandler struct {
	upvotes *gallery.Upvotes
}

// NewUpvoteHandler creates a new upvote handler.
func NewUpvoteHandler(upvotes *gallery.Upvotes) *UpvoteHandler {
	return &UpvoteHandler{upvotes: upvotes}
}

// ListUpvotes returns the vote count of every upvoted project.
func (h *UpvoteHandler) ListUpvotes(ctx context.Context, req *dto.ListUpvotesRequest) (*dto.UpvoteCounts, error) {
	counts, err := h.upvotes.Counts(ctx)
	if err != nil {
		return nil, toAPIError(err, "Failed to read upvotes")
	}
	out := dto.UpvoteCounts(counts)
	if out == nil {
		out = dto.UpvoteCounts{}
	}
	return &out, nil
}

// Upvote adds one vote to a project.
func (h *UpvoteHandler) Upvote(ctx context.Context, req *dto.UpvoteRequest) (*dto.UpvoteResponse, error) {
	n, err := h.upvotes.Upvote(ctx, req.ID)
	if err != nil {
		return nil, toAPIError(err, "Failed to store upvote")
	}
	return &dto.UpvoteResponse{ID: req.ID, Count: n}, nil
}
