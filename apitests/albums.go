package apitests

import (
	"github.com/fakeapi/rest-contract-tests/models"
)

func DoAlbumTests(t *T) {
	doResourceTests(t, resourceFor(models.AlbumSchema))
}
