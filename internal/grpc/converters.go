package grpc

import (
	"strings"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Belphemur/AkwamProvider/internal/models"
	"github.com/Belphemur/AkwamProvider/internal/provider"
)

// sanitizeUTF8 replaces invalid UTF-8 sequences with U+FFFD. Protobuf string
// fields must hold valid UTF-8 or marshalling fails.
func sanitizeUTF8(s string) string {
	return strings.ToValidUTF8(s, "�")
}

func sanitizeUTF8Slice(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = sanitizeUTF8(s)
	}
	return out
}

func stringValue(s string) *structpb.Value {
	return structpb.NewStringValue(sanitizeUTF8(s))
}

func intValue(n int) *structpb.Value {
	return structpb.NewNumberValue(float64(n))
}

func structValue(fields map[string]*structpb.Value) *structpb.Value {
	return structpb.NewStructValue(&structpb.Struct{Fields: fields})
}

func listValue[T any](items []T, convert func(T) *structpb.Value) *structpb.Value {
	values := make([]*structpb.Value, len(items))
	for i, item := range items {
		values[i] = convert(item)
	}
	return structpb.NewListValue(&structpb.ListValue{Values: values})
}

func stringListValue(items []string) *structpb.Value {
	return listValue(sanitizeUTF8Slice(items), structpb.NewStringValue)
}

// convertMainPageRequestToProto converts a models.MainPageRequest to a struct value
func convertMainPageRequestToProto(r models.MainPageRequest) *structpb.Value {
	return structValue(map[string]*structpb.Value{
		"name": stringValue(r.Name),
		"data": stringValue(r.Data),
	})
}

// convertMetadataToProto converts provider metadata to a Struct message
func convertMetadataToProto(m provider.Metadata) *structpb.Struct {
	types := make([]string, len(m.SupportedTypes))
	for i, t := range m.SupportedTypes {
		types[i] = string(t)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"name":           stringValue(m.Name),
		"lang":           stringValue(m.Lang),
		"mainUrl":        stringValue(m.MainURL),
		"hasMainPage":    structpb.NewBoolValue(m.HasMainPage),
		"usesWebView":    structpb.NewBoolValue(m.UsesWebView),
		"supportedTypes": stringListValue(types),
		"mainPage":       listValue(m.MainPage, convertMainPageRequestToProto),
	}}
}

// convertSearchResponseToProto converts a listing card to a struct value
func convertSearchResponseToProto(r models.SearchResponse) *structpb.Value {
	fields := map[string]*structpb.Value{
		"name":    stringValue(r.Name),
		"url":     stringValue(r.URL),
		"apiName": stringValue(r.APIName),
		"type":    stringValue(string(r.Type)),
	}
	if r.PosterURL != "" {
		fields["posterUrl"] = stringValue(r.PosterURL)
	}
	if r.Year != 0 {
		fields["year"] = intValue(r.Year)
	}
	return structValue(fields)
}

// convertHomePageToProto converts a main page section to a Struct message
func convertHomePageToProto(r *models.HomePageResponse) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"name":    stringValue(r.Name),
		"items":   listValue(r.Items, convertSearchResponseToProto),
		"hasNext": structpb.NewBoolValue(r.HasNext),
	}}
}

// convertSearchResultsToProto wraps search results in a Struct message
func convertSearchResultsToProto(results []models.SearchResponse) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"results": listValue(results, convertSearchResponseToProto),
	}}
}

func convertActorToProto(a models.Actor) *structpb.Value {
	return structValue(map[string]*structpb.Value{
		"name":     stringValue(a.Name),
		"imageUrl": stringValue(a.ImageURL),
	})
}

func convertEpisodeToProto(e models.Episode) *structpb.Value {
	fields := map[string]*structpb.Value{
		"name": stringValue(e.Name),
		"data": stringValue(e.Data),
	}
	if e.Episode != 0 {
		fields["episode"] = intValue(e.Episode)
	}
	if e.PosterURL != "" {
		fields["posterUrl"] = stringValue(e.PosterURL)
	}
	// A zero date is left out instead of sending 0001-01-01
	if !e.Date.IsZero() {
		fields["date"] = stringValue(e.Date.Format(time.DateOnly))
	}
	return structValue(fields)
}

// convertLoadResponseToProto converts a detail page response to a Struct message
func convertLoadResponseToProto(r *models.LoadResponse) *structpb.Struct {
	fields := map[string]*structpb.Value{
		"name":            stringValue(r.Name),
		"url":             stringValue(r.URL),
		"apiName":         stringValue(r.APIName),
		"type":            stringValue(string(r.Type)),
		"tags":            stringListValue(r.Tags),
		"actors":          listValue(r.Actors, convertActorToProto),
		"recommendations": listValue(r.Recommendations, convertSearchResponseToProto),
		"episodes":        listValue(r.Episodes, convertEpisodeToProto),
	}
	if r.DataURL != "" {
		fields["dataUrl"] = stringValue(r.DataURL)
	}
	if r.PosterURL != "" {
		fields["posterUrl"] = stringValue(r.PosterURL)
	}
	if r.Plot != "" {
		fields["plot"] = stringValue(r.Plot)
	}
	if r.Year != 0 {
		fields["year"] = intValue(r.Year)
	}
	if r.Rating != 0 {
		fields["rating"] = intValue(r.Rating)
	}
	if r.Duration != 0 {
		fields["duration"] = intValue(r.Duration)
	}
	return &structpb.Struct{Fields: fields}
}

func convertExtractorLinkToProto(l models.ExtractorLink) *structpb.Value {
	return structValue(map[string]*structpb.Value{
		"source":  stringValue(l.Source),
		"name":    stringValue(l.Name),
		"url":     stringValue(l.URL),
		"referer": stringValue(l.Referer),
		"quality": stringValue(l.Quality.String()),
		"height":  intValue(l.Quality.Height()),
		"isM3u8":  structpb.NewBoolValue(l.IsM3u8),
	})
}

func convertSubtitleFileToProto(s models.SubtitleFile) *structpb.Value {
	return structValue(map[string]*structpb.Value{
		"lang": stringValue(s.Lang),
		"url":  stringValue(s.URL),
	})
}

// LoadLinks stream events. Every event carries a "type" of link, subtitle or done.

func linkEvent(l models.ExtractorLink) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"type": structpb.NewStringValue("link"),
		"link": convertExtractorLinkToProto(l),
	}}
}

func subtitleEvent(s models.SubtitleFile) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"type":     structpb.NewStringValue("subtitle"),
		"subtitle": convertSubtitleFileToProto(s),
	}}
}

func doneEvent(found bool) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"type":  structpb.NewStringValue("done"),
		"found": structpb.NewBoolValue(found),
	}}
}

// Request accessors. Missing or mistyped fields read as zero values.

func stringField(s *structpb.Struct, key string) string {
	return strings.TrimSpace(s.GetFields()[key].GetStringValue())
}

func intField(s *structpb.Struct, key string) int {
	return int(s.GetFields()[key].GetNumberValue())
}

func boolField(s *structpb.Struct, key string) bool {
	return s.GetFields()[key].GetBoolValue()
}
