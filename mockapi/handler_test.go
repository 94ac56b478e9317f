package mockapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fakeapi/rest-contract-tests/client"
	"github.com/fakeapi/rest-contract-tests/models"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const testSeed = 42

func withMock(t *testing.T, mode Mode, action func(*client.Client)) {
	httphelpers.WithServer(NewHandler(Options{Mode: mode, Seed: testSeed}), func(server *httptest.Server) {
		action(client.New(server.URL))
	})
}

func requireJSON(t *testing.T, resp *client.Response) ldvalue.Value {
	v, err := resp.JSON()
	require.NoError(t, err)
	return v
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("strict")
	require.NoError(t, err)
	assert.Equal(t, Strict, m)
	_, err = ParseMode("relaxed")
	assert.Error(t, err)
}

func TestCollectionsHaveTheDocumentedSizesAndValidRecords(t *testing.T) {
	withMock(t, Lenient, func(c *client.Client) {
		for _, schema := range models.AllSchemas {
			resp, err := c.Get(context.Background(), schema.Path)
			require.NoError(t, err)
			require.Equal(t, 200, resp.Status)
			items, err := models.DecodeList(schema, resp.Body)
			require.NoError(t, err)
			assert.Len(t, items, schema.IDs.Max, schema.Name)
			for _, e := range items {
				assert.True(t, e.Validate().IsValid(), "%s: %s", e, e.Validate())
			}
		}
	})
}

func TestQueryAndNestedLookups(t *testing.T) {
	withMock(t, Lenient, func(c *client.Client) {
		ctx := context.Background()

		resp, err := c.Get(ctx, "/posts?userId=3")
		require.NoError(t, err)
		posts := requireJSON(t, resp)
		assert.Equal(t, 10, posts.Count())
		for i := 0; i < posts.Count(); i++ {
			assert.Equal(t, 3, posts.GetByIndex(i).GetByKey("userId").IntValue())
		}

		resp, err = c.Get(ctx, "/posts/7/comments")
		require.NoError(t, err)
		assert.Equal(t, 5, requireJSON(t, resp).Count())

		resp, err = c.Get(ctx, "/users/1")
		require.NoError(t, err)
		username := requireJSON(t, resp).GetByKey("username").StringValue()
		resp, err = c.Get(ctx, "/users?username="+username)
		require.NoError(t, err)
		assert.Equal(t, 1, requireJSON(t, resp).Count())

		resp, err = c.Get(ctx, "/todos?completed=true&userId=2")
		require.NoError(t, err)
		todos := requireJSON(t, resp)
		for i := 0; i < todos.Count(); i++ {
			assert.True(t, todos.GetByIndex(i).GetByKey("completed").BoolValue())
		}

		resp, err = c.Get(ctx, "/posts?nonsense=1")
		require.NoError(t, err)
		assert.Equal(t, 0, requireJSON(t, resp).Count())

		resp, err = c.Get(ctx, "/posts/1/photos")
		require.NoError(t, err)
		assert.Equal(t, 404, resp.Status)
	})
}

func TestLenientModeReproducesThePublicService(t *testing.T) {
	withMock(t, Lenient, func(c *client.Client) {
		ctx := context.Background()
		post := models.NewPost(1, "a title", "a body that is long enough")

		resp, err := c.Post(ctx, "/posts", post)
		require.NoError(t, err)
		assert.Equal(t, 201, resp.Status)
		assert.Equal(t, 101, requireJSON(t, resp).GetByKey("id").IntValue())

		resp, err = c.Get(ctx, "/posts/invalid-id")
		require.NoError(t, err)
		assert.Equal(t, 404, resp.Status)

		resp, err = c.Put(ctx, "/posts/5000", post)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.Status)
		assert.Equal(t, 5000, requireJSON(t, resp).GetByKey("id").IntValue())

		resp, err = c.Delete(ctx, "/posts/5000")
		require.NoError(t, err)
		assert.Equal(t, 200, resp.Status)

		resp, err = c.Post(ctx, "/posts", ldvalue.ObjectBuild().Set("extraField", ldvalue.Bool(true)).Build())
		require.NoError(t, err)
		assert.Equal(t, 201, resp.Status)
		assert.True(t, requireJSON(t, resp).GetByKey("extraField").BoolValue())

		resp, err = c.Do(ctx, client.Request{Method: "POST", Path: "/posts", Body: []byte(`{"a":`)})
		require.NoError(t, err)
		assert.Equal(t, 500, resp.Status)

		resp, err = c.Do(ctx, client.Request{Method: "POST", Path: "/posts", Body: []byte(`{"title":"x"}`),
			ContentType: "text/plain"})
		require.NoError(t, err)
		assert.Equal(t, 201, resp.Status)
		assert.JSONEq(t, `{"id":101}`, string(resp.Body))

		resp, err = c.Do(ctx, client.Request{Method: "HEAD", Path: "/posts/1"})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.Status)

		resp, err = c.Do(ctx, client.Request{Method: "OPTIONS", Path: "/posts"})
		require.NoError(t, err)
		assert.Equal(t, 204, resp.Status)
	})
}

func TestPatchMergesIntoExistingRecord(t *testing.T) {
	for _, mode := range []Mode{Lenient, Strict} {
		t.Run(string(mode), func(t *testing.T) {
			withMock(t, mode, func(c *client.Client) {
				patch := ldvalue.ObjectBuild().Set("title", ldvalue.String("Partially Updated Title")).Build()
				resp, err := c.Patch(context.Background(), "/posts/1", patch)
				require.NoError(t, err)
				require.Equal(t, 200, resp.Status)
				post := models.AsPost(requireJSON(t, resp))
				assert.Equal(t, "Partially Updated Title", post.Title())
				assert.NotEmpty(t, post.Body())
				id, _ := post.ID()
				assert.Equal(t, 1, id)
			})
		})
	}
}

func TestStrictModeStatuses(t *testing.T) {
	withMock(t, Strict, func(c *client.Client) {
		ctx := context.Background()
		valid := models.NewPost(1, "a title", "a body that is long enough")

		statusOf := func(resp *client.Response, err error) int {
			require.NoError(t, err)
			return resp.Status
		}

		assert.Equal(t, 201, statusOf(c.Post(ctx, "/posts", valid)))
		assert.Equal(t, 400, statusOf(c.Get(ctx, "/posts/invalid-id")))
		assert.Equal(t, 404, statusOf(c.Get(ctx, "/posts/5000")))
		assert.Equal(t, 404, statusOf(c.Put(ctx, "/posts/5000", valid)))
		assert.Equal(t, 404, statusOf(c.Delete(ctx, "/posts/5000")))
		assert.Equal(t, 204, statusOf(c.Delete(ctx, "/posts/1")))
		assert.Equal(t, 200, statusOf(c.Put(ctx, "/posts/1", valid)))
		assert.Equal(t, 400, statusOf(c.Post(ctx, "/posts", valid.With("title", ldvalue.String("abc")))))
		assert.Equal(t, 400, statusOf(c.Post(ctx, "/posts", models.PostGenerator{}.GenerateWithSpecialCharacters())))
		assert.Equal(t, 413, statusOf(c.Post(ctx, "/posts", models.PostGenerator{}.GenerateLargePayload())))
		assert.Equal(t, 400, statusOf(c.Do(ctx, client.Request{Method: "POST", Path: "/posts", Body: []byte("null")})))
		assert.Equal(t, 400, statusOf(c.Do(ctx, client.Request{Method: "POST", Path: "/posts", Body: []byte("")})))
		assert.Equal(t, 415, statusOf(c.Do(ctx, client.Request{Method: "POST", Path: "/posts",
			Body: []byte(valid.String()), OmitContentType: true})))
		assert.Equal(t, 405, statusOf(c.Do(ctx, client.Request{Method: "HEAD", Path: "/posts/1"})))
		assert.Equal(t, 405, statusOf(c.Do(ctx, client.Request{Method: "OPTIONS", Path: "/posts"})))
		assert.Equal(t, 400, statusOf(c.Get(ctx, "/users/abc/posts")))
		assert.Equal(t, 404, statusOf(c.Get(ctx, "/users/99/posts")))

		resp, err := c.Post(ctx, "/posts", ldvalue.ObjectBuild().Build())
		require.NoError(t, err)
		assert.Contains(t, requireJSON(t, resp).GetByKey("error").StringValue(), "title is required")
	})
}

func TestStrictEmailAndURLChecks(t *testing.T) {
	rejected := 0
	for _, email := range models.InvalidEmails {
		if !isStrictEmail(email) {
			rejected++
		}
	}
	assert.Equal(t, len(models.InvalidEmails), rejected)
	assert.True(t, isStrictEmail("first.last+tag@example.co.uk"))

	for _, u := range models.InvalidURLs {
		assert.False(t, isStrictURL(u), u)
	}
	assert.True(t, isStrictURL("https://via.placeholder.com/600/1234"))
}

func TestStrictModeAcceptsGeneratedRecords(t *testing.T) {
	gens := models.NewGenerators(models.NewFaker(testSeed))
	for _, schema := range models.AllSchemas {
		for i := 0; i < 20; i++ {
			e := gens.Generate(schema)
			assert.Empty(t, rejection(schema, e.AsValue(), 1), "%s", e)
		}
	}
}

func TestStartServesOnALocalPort(t *testing.T) {
	server, err := Start("127.0.0.1:0", NewHandler(Options{Seed: testSeed}))
	require.NoError(t, err)
	defer server.Close()

	assert.True(t, strings.HasPrefix(server.URL(), "http://127.0.0.1:"))
	resp, err := http.Get(server.URL() + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)
}
