// Package filter compiles CEL list-filter expressions for topic queries.
package filter

import (
	"reflect"

	"github.com/google/cel-go/cel"
	"github.com/pkg/errors"
)

// TopicEnv is the attribute set a topic filter expression may reference.
type TopicEnv struct {
	Title       string
	Folder      string
	ReviewCount int
	Started     bool
}

// TopicPredicate evaluates a compiled filter against one topic.
type TopicPredicate func(env TopicEnv) (bool, error)

// CompileTopicFilter compiles an expression such as
// `title.contains("thermo") && !started` into a reusable predicate.
func CompileTopicFilter(expression string) (TopicPredicate, error) {
	env, err := cel.NewEnv(
		cel.Variable("title", cel.StringType),
		cel.Variable("folder", cel.StringType),
		cel.Variable("review_count", cel.IntType),
		cel.Variable("started", cel.BoolType),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create filter environment")
	}

	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, errors.Wrap(issues.Err(), "invalid filter expression")
	}
	if !reflect.DeepEqual(ast.OutputType(), cel.BoolType) {
		return nil, errors.Errorf("filter must evaluate to a boolean, got %s", ast.OutputType())
	}

	program, err := env.Program(ast)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build filter program")
	}

	return func(topicEnv TopicEnv) (bool, error) {
		out, _, err := program.Eval(map[string]any{
			"title":        topicEnv.Title,
			"folder":       topicEnv.Folder,
			"review_count": topicEnv.ReviewCount,
			"started":      topicEnv.Started,
		})
		if err != nil {
			return false, errors.Wrap(err, "failed to evaluate filter")
		}
		matched, ok := out.Value().(bool)
		if !ok {
			return false, errors.New("filter did not produce a boolean")
		}
		return matched, nil
	}, nil
}
