package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileTopicFilter(t *testing.T) {
	predicate, err := CompileTopicFilter(`title.contains("thermo") && review_count > 0`)
	require.NoError(t, err)

	matched, err := predicate(TopicEnv{Title: "thermodynamics", ReviewCount: 2})
	require.NoError(t, err)
	assert.True(t, matched)

	matched, err = predicate(TopicEnv{Title: "thermodynamics", ReviewCount: 0})
	require.NoError(t, err)
	assert.False(t, matched)

	matched, err = predicate(TopicEnv{Title: "optics", ReviewCount: 5})
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestCompileTopicFilterFolderAndStarted(t *testing.T) {
	predicate, err := CompileTopicFilter(`folder == "physics" && !started`)
	require.NoError(t, err)

	matched, err := predicate(TopicEnv{Folder: "physics"})
	require.NoError(t, err)
	assert.True(t, matched)

	matched, err = predicate(TopicEnv{Folder: "physics", Started: true})
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestCompileTopicFilterRejectsInvalid(t *testing.T) {
	_, err := CompileTopicFilter(`title +`)
	assert.Error(t, err, "syntax errors are reported at compile time")

	_, err = CompileTopicFilter(`unknown_field == "x"`)
	assert.Error(t, err, "unknown attributes are rejected")

	_, err = CompileTopicFilter(`title`)
	assert.Error(t, err, "non-boolean expressions are rejected")
}
