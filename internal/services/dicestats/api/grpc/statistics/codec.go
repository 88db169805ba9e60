package statistics

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/louisbranch/dicestats/internal/core/stats"
	"google.golang.org/protobuf/types/known/structpb"
)

// CalculateRequest asks for statistics of one expression. An empty
// Statistics list requests every kind.
type CalculateRequest struct {
	Expression string
	Statistics []stats.Kind
}

// CalculateResponse carries the requested statistics. Only the kinds listed
// in Statistics are meaningful in Result.
type CalculateResponse struct {
	Expression string
	Statistics []stats.Kind
	Result     stats.Result
	Cached     bool
}

// RollRequest asks for one seeded roll. A nil Seed lets the server choose.
type RollRequest struct {
	Expression string
	Seed       *int64
}

// DiceRoll is the faces rolled for one dice term.
type DiceRoll struct {
	Dice    string
	Results []int
	Total   int
}

// Roll is one logged roll of an expression.
type Roll struct {
	ID         string
	Expression string
	Total      float64
	Seed       int64
	SeedSource string
	Dice       []DiceRoll
	CreatedAt  time.Time
}

// calculateRequestWire keeps unknown statistic names so the service can
// report which one was rejected.
type calculateRequestWire struct {
	Expression string
	Statistics []string
}

type rollRequestWire struct {
	Expression string
	Seed       string
	HasSeed    bool
}

func (r CalculateRequest) toStruct() (*structpb.Struct, error) {
	names := make([]any, 0, len(r.Statistics))
	for _, kind := range r.Statistics {
		names = append(names, kind.String())
	}
	return structpb.NewStruct(map[string]any{
		"expression": r.Expression,
		"statistics": names,
	})
}

func decodeCalculateRequest(in *structpb.Struct) (calculateRequestWire, error) {
	fields := in.GetFields()
	expression, err := stringField(fields, "expression")
	if err != nil {
		return calculateRequestWire{}, err
	}
	names, err := stringListField(fields, "statistics")
	if err != nil {
		return calculateRequestWire{}, err
	}
	return calculateRequestWire{Expression: expression, Statistics: names}, nil
}

func (r CalculateResponse) toStruct() (*structpb.Struct, error) {
	names := make([]any, 0, len(r.Statistics))
	m := map[string]any{
		"expression": r.Expression,
		"cached":     r.Cached,
	}
	for _, kind := range r.Statistics {
		names = append(names, kind.String())
		switch kind {
		case stats.ExpectedValue:
			m["expected_value"] = r.Result.ExpectedValue
		case stats.Variance:
			m["variance"] = r.Result.Variance
		case stats.ProbabilityDistribution:
			outcomes := r.Result.Distribution.Outcomes()
			list := make([]any, 0, len(outcomes))
			for _, outcome := range outcomes {
				list = append(list, map[string]any{
					"value":       outcome.Value,
					"probability": outcome.Probability,
				})
			}
			m["distribution"] = list
		}
	}
	m["statistics"] = names
	return structpb.NewStruct(m)
}

func decodeCalculateResponse(in *structpb.Struct) (CalculateResponse, error) {
	fields := in.GetFields()
	var resp CalculateResponse
	var err error
	if resp.Expression, err = stringField(fields, "expression"); err != nil {
		return CalculateResponse{}, err
	}
	resp.Cached = fields["cached"].GetBoolValue()

	names, err := stringListField(fields, "statistics")
	if err != nil {
		return CalculateResponse{}, err
	}
	for _, name := range names {
		kind, err := stats.ParseKind(name)
		if err != nil {
			return CalculateResponse{}, err
		}
		resp.Statistics = append(resp.Statistics, kind)
		switch kind {
		case stats.ExpectedValue:
			resp.Result.ExpectedValue, err = numberField(fields, "expected_value")
		case stats.Variance:
			resp.Result.Variance, err = numberField(fields, "variance")
		case stats.ProbabilityDistribution:
			resp.Result.Distribution, err = distributionField(fields, "distribution")
		}
		if err != nil {
			return CalculateResponse{}, err
		}
	}
	return resp, nil
}

func (r RollRequest) toStruct() (*structpb.Struct, error) {
	m := map[string]any{"expression": r.Expression}
	if r.Seed != nil {
		m["seed"] = strconv.FormatInt(*r.Seed, 10)
	}
	return structpb.NewStruct(m)
}

func decodeRollRequest(in *structpb.Struct) (rollRequestWire, error) {
	fields := in.GetFields()
	expression, err := stringField(fields, "expression")
	if err != nil {
		return rollRequestWire{}, err
	}
	req := rollRequestWire{Expression: expression}
	value, ok := fields["seed"]
	if !ok {
		return req, nil
	}
	switch kind := value.GetKind().(type) {
	case *structpb.Value_NullValue:
	case *structpb.Value_StringValue:
		req.Seed, req.HasSeed = kind.StringValue, true
	case *structpb.Value_NumberValue:
		// JSON clients send small seeds as numbers. Past 2^53 the value has
		// already lost precision, so it is passed on in a form parseSeed rejects.
		number := kind.NumberValue
		if number == math.Trunc(number) && math.Abs(number) <= 1<<53 {
			req.Seed = strconv.FormatInt(int64(number), 10)
		} else {
			req.Seed = strconv.FormatFloat(number, 'g', -1, 64)
		}
		req.HasSeed = true
	default:
		return rollRequestWire{}, fmt.Errorf("field seed must be a string")
	}
	return req, nil
}

func parseSeed(text string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(text), 10, 64)
}

func decodeGetRollRequest(in *structpb.Struct) (string, error) {
	return stringField(in.GetFields(), "roll_id")
}

func (r Roll) toStruct() (*structpb.Struct, error) {
	dice := make([]any, 0, len(r.Dice))
	for _, roll := range r.Dice {
		results := make([]any, 0, len(roll.Results))
		for _, face := range roll.Results {
			results = append(results, face)
		}
		dice = append(dice, map[string]any{
			"dice":    roll.Dice,
			"results": results,
			"total":   roll.Total,
		})
	}
	return structpb.NewStruct(map[string]any{
		"roll_id":     r.ID,
		"expression":  r.Expression,
		"total":       r.Total,
		"seed":        strconv.FormatInt(r.Seed, 10),
		"seed_source": r.SeedSource,
		"dice":        dice,
		"created_at":  r.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
}

func decodeRoll(in *structpb.Struct) (Roll, error) {
	fields := in.GetFields()
	var roll Roll
	var err error
	if roll.ID, err = stringField(fields, "roll_id"); err != nil {
		return Roll{}, err
	}
	if roll.Expression, err = stringField(fields, "expression"); err != nil {
		return Roll{}, err
	}
	if roll.Total, err = numberField(fields, "total"); err != nil {
		return Roll{}, err
	}
	seed, err := stringField(fields, "seed")
	if err != nil {
		return Roll{}, err
	}
	if roll.Seed, err = parseSeed(seed); err != nil {
		return Roll{}, fmt.Errorf("field seed: %w", err)
	}
	if roll.SeedSource, err = stringField(fields, "seed_source"); err != nil {
		return Roll{}, err
	}
	if created, _ := stringField(fields, "created_at"); created != "" {
		if roll.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return Roll{}, fmt.Errorf("field created_at: %w", err)
		}
	}

	for _, item := range fields["dice"].GetListValue().GetValues() {
		entry := item.GetStructValue().GetFields()
		var dr DiceRoll
		if dr.Dice, err = stringField(entry, "dice"); err != nil {
			return Roll{}, err
		}
		total, err := numberField(entry, "total")
		if err != nil {
			return Roll{}, err
		}
		dr.Total = int(total)
		for _, face := range entry["results"].GetListValue().GetValues() {
			dr.Results = append(dr.Results, int(face.GetNumberValue()))
		}
		roll.Dice = append(roll.Dice, dr)
	}
	return roll, nil
}

func stringField(fields map[string]*structpb.Value, name string) (string, error) {
	value, ok := fields[name]
	if !ok {
		return "", nil
	}
	switch kind := value.GetKind().(type) {
	case *structpb.Value_StringValue:
		return kind.StringValue, nil
	case *structpb.Value_NullValue:
		return "", nil
	default:
		return "", fmt.Errorf("field %s must be a string", name)
	}
}

func stringListField(fields map[string]*structpb.Value, name string) ([]string, error) {
	value, ok := fields[name]
	if !ok {
		return nil, nil
	}
	if _, isNull := value.GetKind().(*structpb.Value_NullValue); isNull {
		return nil, nil
	}
	list, ok := value.GetKind().(*structpb.Value_ListValue)
	if !ok {
		return nil, fmt.Errorf("field %s must be a list of strings", name)
	}
	out := make([]string, 0, len(list.ListValue.GetValues()))
	for _, item := range list.ListValue.GetValues() {
		text, ok := item.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, fmt.Errorf("field %s must be a list of strings", name)
		}
		out = append(out, text.StringValue)
	}
	return out, nil
}

func numberField(fields map[string]*structpb.Value, name string) (float64, error) {
	value, ok := fields[name]
	if !ok {
		return 0, fmt.Errorf("field %s is required", name)
	}
	switch kind := value.GetKind().(type) {
	case *structpb.Value_NumberValue:
		return kind.NumberValue, nil
	default:
		return 0, fmt.Errorf("field %s must be a number", name)
	}
}

func distributionField(fields map[string]*structpb.Value, name string) (stats.Distribution, error) {
	value, ok := fields[name]
	if !ok {
		return nil, fmt.Errorf("field %s is required", name)
	}
	items := value.GetListValue().GetValues()
	outcomes := make([]stats.Outcome, 0, len(items))
	for _, item := range items {
		entry := item.GetStructValue().GetFields()
		outcomeValue, err := numberField(entry, "value")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		probability, err := numberField(entry, "probability")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		outcomes = append(outcomes, stats.Outcome{Value: outcomeValue, Probability: probability})
	}
	return stats.FromOutcomes(outcomes), nil
}
