package utils

import (
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ProbeDuration returns the container duration of a media file in seconds.
func ProbeDuration(path string) (float64, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, errors.WithMessage(err, "Failed to probe the video")
	}
	return parseProbeDuration(out)
}

func parseProbeDuration(probe string) (float64, error) {
	d := gjson.Get(probe, "format.duration")
	if !d.Exists() {
		return 0, errors.New("probe output has no format.duration")
	}
	return d.Float(), nil
}
