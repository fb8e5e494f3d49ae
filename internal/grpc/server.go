package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Belphemur/AkwamProvider/internal/apperrors"
	"github.com/Belphemur/AkwamProvider/internal/config"
	"github.com/Belphemur/AkwamProvider/internal/models"
	"github.com/Belphemur/AkwamProvider/internal/provider"
	"github.com/rs/zerolog"
)

// server implements ProviderServiceServer on top of a provider.Provider
type server struct {
	provider provider.Provider
	logger   zerolog.Logger
}

// NewServer creates a new gRPC server instance
func NewServer(p provider.Provider) ProviderServiceServer {
	return &server{
		provider: p,
		logger:   config.GetLogger(),
	}
}

// toStatus maps provider errors to gRPC status codes
func toStatus(err error, msg string) error {
	code := codes.Internal
	switch {
	case errors.Is(err, &apperrors.ErrBlocked{}):
		code = codes.Unavailable
	case errors.Is(err, &apperrors.ErrNotFound{}):
		code = codes.NotFound
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	}
	return status.Errorf(code, "%s: %v", msg, err)
}

// GetInfo implements ProviderServiceServer.GetInfo
func (s *server) GetInfo(_ context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	s.logger.Debug().Msg("GetInfo called")
	return convertMetadataToProto(s.provider.Info()), nil
}

// GetMainPage implements ProviderServiceServer.GetMainPage
func (s *server) GetMainPage(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	request := models.MainPageRequest{
		Name: stringField(req, "name"),
		Data: stringField(req, "data"),
	}
	page := intField(req, "page")
	if page <= 0 {
		page = 1
	}
	s.logger.Debug().Str("section", request.Name).Int("page", page).Msg("GetMainPage called")

	if request.Data == "" {
		return nil, status.Error(codes.InvalidArgument, "data is required")
	}

	resp, err := s.provider.GetMainPage(ctx, page, request)
	if err != nil {
		s.logger.Error().Err(err).Str("section", request.Name).Msg("Failed to get main page")
		return nil, toStatus(err, "failed to get main page")
	}

	s.logger.Debug().Str("section", request.Name).Int("count", len(resp.Items)).Msg("GetMainPage completed")
	return convertHomePageToProto(resp), nil
}

// Search implements ProviderServiceServer.Search
func (s *server) Search(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	query := stringField(req, "query")
	s.logger.Debug().Str("query", query).Msg("Search called")

	results, err := s.provider.Search(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("Failed to search")
		return nil, toStatus(err, "failed to search")
	}

	s.logger.Debug().Str("query", query).Int("count", len(results)).Msg("Search completed")
	return convertSearchResultsToProto(results), nil
}

// Load implements ProviderServiceServer.Load
func (s *server) Load(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	url := stringField(req, "url")
	s.logger.Debug().Str("url", url).Msg("Load called")

	if url == "" {
		return nil, status.Error(codes.InvalidArgument, "url is required")
	}

	resp, err := s.provider.Load(ctx, url)
	if err != nil {
		s.logger.Error().Err(err).Str("url", url).Msg("Failed to load")
		return nil, toStatus(err, "failed to load")
	}

	s.logger.Debug().Str("url", url).Str("type", string(resp.Type)).Msg("Load completed")
	return convertLoadResponseToProto(resp), nil
}

// LoadLinks implements ProviderServiceServer.LoadLinks. Links and subtitles are
// streamed as they are found and a final done event reports the overall result.
func (s *server) LoadLinks(req *structpb.Struct, stream grpc.ServerStreamingServer[structpb.Struct]) error {
	data := stringField(req, "data")
	s.logger.Debug().Str("data", data).Msg("LoadLinks called")

	if data == "" {
		return status.Error(codes.InvalidArgument, "data is required")
	}

	// The provider serializes callbacks, so Send is never called concurrently
	var sendErr error
	send := func(event *structpb.Struct) {
		if sendErr != nil {
			return
		}
		if err := stream.Send(event); err != nil {
			sendErr = err
		}
	}

	ctx, cancel := context.WithCancel(stream.Context())
	defer cancel()

	found, err := s.provider.LoadLinks(ctx, data, boolField(req, "isCasting"),
		func(sub models.SubtitleFile) {
			send(subtitleEvent(sub))
			if sendErr != nil {
				cancel()
			}
		},
		func(link models.ExtractorLink) {
			send(linkEvent(link))
			if sendErr != nil {
				cancel()
			}
		},
	)
	if sendErr != nil {
		s.logger.Error().Err(sendErr).Str("data", data).Msg("Failed to send link event")
		return sendErr
	}
	if err != nil {
		s.logger.Error().Err(err).Str("data", data).Msg("Failed to load links")
		return toStatus(err, "failed to load links")
	}

	if err := stream.Send(doneEvent(found)); err != nil {
		return err
	}
	s.logger.Debug().Str("data", data).Bool("found", found).Msg("LoadLinks completed")
	return nil
}
