// Package fixtures provides the literal request bodies used by the data-driven scenarios.
//
// The documents are embedded in the binary, but a directory containing files of the same names
// can be used instead so that a run can be pointed at different data without rebuilding.
package fixtures

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"

	"github.com/fakeapi/rest-contract-tests/models"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	postsFile = "posts.json"
	usersFile = "users.json"
)

//go:embed data/*.json
var embedded embed.FS

// InvalidPayload is a request body that a strict service should reject.
type InvalidPayload struct {
	Description string        `json:"description"`
	Data        ldvalue.Value `json:"data"`
}

// PostData is the content of posts.json.
type PostData struct {
	ValidPosts   []ldvalue.Value  `json:"validPosts"`
	InvalidPosts []InvalidPayload `json:"invalidPosts"`
	UpdateData   []ldvalue.Value  `json:"updateData"`
}

// UserData is the content of users.json.
type UserData struct {
	ValidUsers   []ldvalue.Value  `json:"validUsers"`
	InvalidUsers []InvalidPayload `json:"invalidUsers"`
}

// Embedded returns the fixture documents compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// LoadPosts reads the embedded posts.json.
func LoadPosts() (PostData, error) {
	return LoadPostsFrom(Embedded())
}

// LoadUsers reads the embedded users.json.
func LoadUsers() (UserData, error) {
	return LoadUsersFrom(Embedded())
}

// LoadPostsFrom reads posts.json from fsys.
func LoadPostsFrom(fsys fs.FS) (PostData, error) {
	var ret PostData
	if err := load(fsys, postsFile, &ret); err != nil {
		return PostData{}, err
	}
	if len(ret.UpdateData) == 0 {
		return PostData{}, fmt.Errorf("%s: updateData must not be empty", postsFile)
	}
	return ret, nil
}

// LoadUsersFrom reads users.json from fsys.
func LoadUsersFrom(fsys fs.FS) (UserData, error) {
	var ret UserData
	if err := load(fsys, usersFile, &ret); err != nil {
		return UserData{}, err
	}
	if len(ret.ValidUsers) == 0 {
		return UserData{}, fmt.Errorf("%s: validUsers must not be empty", usersFile)
	}
	return ret, nil
}

func load(fsys fs.FS, name string, into interface{}) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("reading fixture file: %w", err)
	}
	if err := json.Unmarshal(data, into); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Posts returns the valid posts as models.
func (d PostData) Posts() []models.Post {
	ret := make([]models.Post, 0, len(d.ValidPosts))
	for _, v := range d.ValidPosts {
		ret = append(ret, models.AsPost(v))
	}
	return ret
}

// Update returns the first update payload as a post. The loaders guarantee that one exists.
func (d PostData) Update() models.Post {
	return models.AsPost(d.UpdateData[0])
}

// Users returns the valid users as models.
func (d UserData) Users() []models.User {
	ret := make([]models.User, 0, len(d.ValidUsers))
	for _, v := range d.ValidUsers {
		ret = append(ret, models.AsUser(v))
	}
	return ret
}
