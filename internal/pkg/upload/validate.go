package upload

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"
)

var allowedExt = map[string]bool{
	".mp3": true,
	".wav": true,
	".ogg": true,
	".m4a": true,
}

var allowedMime = map[string]bool{
	"audio/mpeg":      true,
	"audio/mp3":       true,
	"audio/wave":      true,
	"audio/wav":       true,
	"audio/x-wav":     true,
	"audio/ogg":       true,
	"application/ogg": true,
	"audio/mp4":       true,
	"audio/aac":       true,
	"video/mp4":       true, // m4a containers sniff as video/mp4
}

// ValidateAudioBySniff checks the filename extension and the first bytes of
// the upload against a whitelist of audio types. Returns the detected mime
// or an error.
func ValidateAudioBySniff(filename string, head []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExt[ext] {
		return "", errors.New("Seuls les formats audio MP3, WAV, OGG et M4A sont acceptés")
	}

	detected := http.DetectContentType(head)

	// Block obvious scriptable types regardless of extension
	if strings.HasPrefix(detected, "text/html") || strings.HasPrefix(detected, "application/xhtml") {
		return "", errors.New("Type de fichier invalide : le contenu HTML n'est pas autorisé")
	}
	if strings.HasPrefix(detected, "text/xml") || strings.HasPrefix(detected, "application/xml") {
		return "", errors.New("Type de fichier invalide : le contenu XML n'est pas autorisé")
	}

	// MP3 frames without an ID3 tag often sniff as octet-stream; allow by
	// extension in that case.
	if detected == "application/octet-stream" && allowedExt[ext] {
		return detected, nil
	}

	if allowedMime[detected] {
		return detected, nil
	}

	return "", errors.New("Le type de fichier n'est pas pris en charge")
}
