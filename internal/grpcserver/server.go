package grpcserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/conorfabian/streamlinks/internal/catalog"
	"github.com/conorfabian/streamlinks/internal/search"
	"github.com/conorfabian/streamlinks/pkg/models"
)

type Server struct {
	Catalog *catalog.Catalog
	Search  *search.Service
}

var _ DirectoryServer = (*Server)(nil)

func NewServer(c *catalog.Catalog, s *search.Service) *Server {
	return &Server{Catalog: c, Search: s}
}

func (s *Server) Suggest(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request required")
	}
	scope, err := search.ParseScope(stringField(req, "type"))
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	resp := s.Search.Suggest(ctx, search.Request{
		Query: stringField(req, "q"),
		Scope: scope,
		Limit: intField(req, "limit", search.DefaultLimit),
	})
	if resp.Failed() {
		return nil, status.Error(codes.Internal, resp.Error)
	}
	return toStruct(resp)
}

func (s *Server) ListSites(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request required")
	}
	q := catalog.ListQuery{
		Status: stringField(req, "status"),
		Sort:   stringField(req, "sort"),
		Limit:  intField(req, "limit", 0),
		Offset: intField(req, "offset", 0),
	}
	if q.Limit < 0 || q.Offset < 0 {
		return nil, status.Error(codes.InvalidArgument, "limit and offset must be >= 0")
	}
	if raw := strings.TrimSpace(stringField(req, "category")); raw != "" {
		cat, ok := models.CategoryFromSlug(raw)
		if !ok {
			return nil, status.Error(codes.InvalidArgument, "unknown category")
		}
		q.Category = cat
	}

	items, total := s.Catalog.List(q)
	if items == nil {
		items = []models.DirectorySite{}
	}
	return toStruct(map[string]any{
		"total":  total,
		"limit":  q.Limit,
		"offset": q.Offset,
		"items":  items,
	})
}

func (s *Server) SearchContent(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	q := strings.TrimSpace(stringField(req, "q"))
	if q == "" {
		return nil, status.Error(codes.InvalidArgument, "q required")
	}
	results, err := s.Search.SearchContent(ctx, q)
	if err != nil {
		return nil, status.Error(codes.Internal, "search failed")
	}
	return toStruct(map[string]any{"query": q, "results": results})
}

func stringField(s *structpb.Struct, key string) string {
	if s == nil {
		return ""
	}
	v, ok := s.GetFields()[key]
	if !ok {
		return ""
	}
	return v.GetStringValue()
}

func intField(s *structpb.Struct, key string, def int) int {
	if s == nil {
		return def
	}
	v, ok := s.GetFields()[key]
	if !ok {
		return def
	}
	if _, isNum := v.GetKind().(*structpb.Value_NumberValue); !isNum {
		return def
	}
	return int(v.GetNumberValue())
}

// toStruct converts a JSON-tagged value into a Struct by way of its JSON
// encoding, so gRPC clients see the same field names as HTTP clients.
func toStruct(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	return out, nil
}
