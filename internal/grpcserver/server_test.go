package grpcserver

import (
	"context"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/conorfabian/streamlinks/internal/catalog"
	"github.com/conorfabian/streamlinks/internal/logging"
	"github.com/conorfabian/streamlinks/internal/metadata"
	"github.com/conorfabian/streamlinks/internal/search"
)

func dial(t *testing.T) *Client {
	t.Helper()
	sites, err := catalog.Default()
	if err != nil {
		t.Fatalf("Default returned error: %v", err)
	}
	cat, err := catalog.New(sites)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	lookup := metadata.NewService(nil, "", logging.Discard())
	svc := search.NewService(cat, lookup, search.WithLogger(logging.Discard()))

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	RegisterDirectoryServer(srv, NewServer(cat, svc))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return NewClient(conn)
}

func mustStruct(t *testing.T, m map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(m)
	if err != nil {
		t.Fatalf("NewStruct: %v", err)
	}
	return s
}

func ctx(t *testing.T) context.Context {
	c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return c
}

func TestSuggestOverGRPC(t *testing.T) {
	client := dial(t)
	resp, err := client.Suggest(ctx(t), mustStruct(t, map[string]any{"q": "naruto", "type": "sites"}))
	if err != nil {
		t.Fatalf("Suggest returned error: %v", err)
	}
	list := resp.GetFields()["suggestions"].GetListValue().GetValues()
	if len(list) == 0 {
		t.Fatal("expected suggestions")
	}
	first := list[0].GetStructValue().GetFields()
	if first["title"].GetStringValue() != "Naruto Stream" || first["kind"].GetStringValue() != "site" {
		t.Fatalf("unexpected first suggestion %v", first)
	}
}

func TestSuggestInvalidScope(t *testing.T) {
	client := dial(t)
	_, err := client.Suggest(ctx(t), mustStruct(t, map[string]any{"q": "naruto", "type": "people"}))
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestListSitesOverGRPC(t *testing.T) {
	client := dial(t)
	resp, err := client.ListSites(ctx(t), mustStruct(t, map[string]any{"category": "sports", "limit": 1}))
	if err != nil {
		t.Fatalf("ListSites returned error: %v", err)
	}
	fields := resp.GetFields()
	if fields["total"].GetNumberValue() != 2 || len(fields["items"].GetListValue().GetValues()) != 1 {
		t.Fatalf("unexpected response %v", fields)
	}

	_, err = client.ListSites(ctx(t), mustStruct(t, map[string]any{"category": "cartoons"}))
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestSearchContentFallbackOverGRPC(t *testing.T) {
	client := dial(t)
	resp, err := client.SearchContent(ctx(t), mustStruct(t, map[string]any{"q": "breaking bad season 1"}))
	if err != nil {
		t.Fatalf("SearchContent returned error: %v", err)
	}
	results := resp.GetFields()["results"].GetListValue().GetValues()
	if len(results) != 1 {
		t.Fatalf("expected one fallback result, got %d", len(results))
	}
	content := results[0].GetStructValue().GetFields()["content"].GetStructValue().GetFields()
	if content["type"].GetStringValue() != "tv" {
		t.Fatalf("unexpected content %v", content)
	}

	_, err = client.SearchContent(ctx(t), mustStruct(t, map[string]any{}))
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}
