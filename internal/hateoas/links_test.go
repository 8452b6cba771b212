package hateoas

import (
	"testing"

	"github.com/GevorkovG/go-qrcodes/internal/objects"
	"github.com/GevorkovG/go-qrcodes/internal/urlcodec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLinks(t *testing.T) {
	id := urlcodec.Encode("https://example.com")
	filename := id + ".png"

	view := objects.Link{Rel: "view", Href: "http://x/downloads/" + filename, Action: "GET", Type: "image/png"}
	del := objects.Link{Rel: "delete", Href: "http://x/qr-codes/" + filename, Action: "DELETE", Type: "application/json"}

	tests := []struct {
		name     string
		action   Action
		filename string
		want     []objects.Link
		wantErr  error
	}{
		{name: "create", action: Create, filename: filename, want: []objects.Link{view, del}},
		{name: "list", action: List, filename: filename, want: []objects.Link{view, del}},
		{name: "delete", action: Delete, filename: filename, want: []objects.Link{del}},
		{name: "create corrupt", action: Create, filename: "%%%.png", wantErr: urlcodec.ErrMalformedIdentifier},
		{name: "list without suffix", action: List, filename: id, wantErr: urlcodec.ErrMalformedIdentifier},
		{name: "unknown action", action: Action("update"), filename: filename, wantErr: ErrUnknownAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			links, err := BuildLinks(tt.action, tt.filename, "http://x", "http://x/downloads/"+tt.filename)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, links)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, links)
		})
	}
}

func TestBuildLinks_DeleteDoesNotDecode(t *testing.T) {
	// ссылка удаления нужна и для повреждённых записей
	links, err := BuildLinks(Delete, "garbage!.png", "http://x", "")
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "http://x/qr-codes/garbage!.png", links[0].Href)
}
