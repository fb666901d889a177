package grabber

//go:generate $MOCKGEN -source=tag_processor.go -destination=mocks/tag_processor_mock.go

import (
	"context"
	"errors"

	"github.com/bogem/id3v2"
)

// TagProcessor defines the interface for writing metadata tags to audio files.
type TagProcessor interface {
	WriteTags(ctx context.Context, req *WriteTagsRequest) error
}

// WriteTagsRequest contains parameters for writing metadata to audio files.
type WriteTagsRequest struct {
	// TrackPath is the file path of the audio track.
	TrackPath string
	// TrackTags contains metadata key-value pairs to write.
	TrackTags map[string]string
}

// TagProcessorImpl provides the default implementation of TagProcessor.
type TagProcessorImpl struct{}

// Static error definitions for better error handling.
var (
	// ErrEmptyTrackPath indicates that the track file path is empty.
	ErrEmptyTrackPath = errors.New("track path cannot be empty")
)

// NewTagProcessor creates a new TagProcessor instance.
func NewTagProcessor() TagProcessor {
	return new(TagProcessorImpl)
}

// WriteTags writes ID3v2 metadata to the MP3 file at req.TrackPath.
func (tp *TagProcessorImpl) WriteTags(_ context.Context, req *WriteTagsRequest) error {
	if req.TrackPath == "" {
		return ErrEmptyTrackPath
	}

	// Open the MP3 file for writing metadata, keeping any frames the acquisition tool wrote.
	tag, err := id3v2.Open(req.TrackPath, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}

	defer tag.Close()

	tp.addMP3Tags(tag, req)

	// Save the updated MP3 file.
	return tag.Save()
}

func (tp *TagProcessorImpl) addMP3Tags(tag *id3v2.Tag, req *WriteTagsRequest) {
	// Set default encoding for the tags.
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	// Add basic metadata tags.
	tag.SetAlbum(req.TrackTags["trackAlbum"])
	tag.SetArtist(req.TrackTags["trackArtist"])
	tag.SetTitle(req.TrackTags["trackTitle"])
	tag.SetYear(req.TrackTags["releaseYear"])

	// Add the track number within its album.
	if trackNumber := req.TrackTags["trackNumber"]; trackNumber != "" {
		tag.AddTextFrame(
			tag.CommonID("Track number/Position in set"),
			tag.DefaultEncoding(),
			trackNumber,
		)
	}
}
