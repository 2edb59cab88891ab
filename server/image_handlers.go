package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/lnward/go-lnauth-server/lnauth"
)

// Image responses are immutable for a given path, so clients may cache hard.
const imageCacheSeconds = 24 * 60 * 60

// QRHandler renders a challenge as a scannable PNG. The encoded lnurl
// arrives as the final path segment, "{lnurl}.png".
func (s *Server) QRHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.gen.QR == nil {
			s.writeError(w, r, lnauth.NewError(lnauth.CodeNotFound, "qr generation not enabled"), modeJSON)
			return
		}

		encoded := strings.TrimSuffix(r.PathValue("file"), ".png")
		if encoded == "" {
			s.writeError(w, r, lnauth.NewError(lnauth.CodeBadRequest, "missing lnurl path segment"), modeJSON)
			return
		}

		png, err := s.gen.QR("lightning:" + encoded)
		if err != nil {
			s.writeError(w, r, lnauth.WrapError(lnauth.CodeDefault, err, "qr generation failed"), modeJSON)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", imageCacheSeconds))
		_, _ = w.Write(png)
	}
}

// AvatarHandler serves the deterministic avatar referenced by identity
// tokens. The pubkey arrives as the final path segment, "{pubkey}.svg".
func (s *Server) AvatarHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.gen.Avatar == nil {
			s.writeError(w, r, lnauth.NewError(lnauth.CodeNotFound, "avatars not enabled"), modeJSON)
			return
		}

		pubkey := strings.TrimSuffix(r.PathValue("file"), ".svg")
		if pubkey == "" {
			s.writeError(w, r, lnauth.NewError(lnauth.CodeBadRequest, "missing pubkey path segment"), modeJSON)
			return
		}

		svg, err := s.gen.Avatar(pubkey)
		if err != nil {
			s.writeError(w, r, lnauth.WrapError(lnauth.CodeDefault, err, "avatar generation failed"), modeJSON)
			return
		}

		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", imageCacheSeconds))
		_, _ = w.Write(svg)
	}
}
