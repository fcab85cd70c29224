package cli

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.viam.com/rdk/logging"

	"github.com/mrBelka/block-grasp-generator/config"
	"github.com/mrBelka/block-grasp-generator/grasp"
	"github.com/mrBelka/block-grasp-generator/visualize"
)

// GenerateAction is the corresponding action for 'generate'.
func GenerateAction(c *cli.Context) error {
	logger := loggerFrom(c)
	format := c.String(generateFlagFormat)
	if format != formatTable && format != formatJSON {
		return errors.Errorf("unknown --%s %q, expected %s or %s", generateFlagFormat, format, formatTable, formatJSON)
	}
	policy, ok := grasp.PolicyByName(c.String(generateFlagPolicy))
	if !ok {
		return errors.Errorf("unknown --%s %q", generateFlagPolicy, c.String(generateFlagPolicy))
	}
	reqs, err := readRequests(c, logger)
	if err != nil {
		return err
	}

	graspReqs := make([]grasp.Request, 0, len(reqs))
	for _, req := range reqs {
		gr, err := req.GraspRequest()
		if err != nil {
			return errors.Wrapf(err, "request %q", req.Name)
		}
		graspReqs = append(graspReqs, gr)
	}

	gen := grasp.NewGenerator(logger.Sublogger("generator"), policy)
	results, err := gen.GenerateBatch(c.Context, graspReqs, c.Int(generateFlagWorkers))
	if err != nil {
		return err
	}
	for i, req := range reqs {
		logger.Infof("Generated %d grasps for %s", len(results[i]), req.Name)
	}

	if c.Bool(generateFlagVisualize) {
		driver := visualize.NewDriver(visualize.NewMotionToolsScene(), logger.Sublogger("visualize"),
			visualize.WithFrameDelay(c.Duration(generateFlagFrameDelay)))
		if err := present(c, driver, reqs, results); err != nil {
			return err
		}
	}

	if format == formatJSON {
		return writeJSON(c.App.Writer, reqs, results)
	}
	printf(c.App.Writer, "%s", candidateTable(reqs, results))
	for i, req := range reqs {
		printf(c.App.Writer, "%s", summaryLine(req.Name, grasp.Summarize(results[i])))
	}
	return nil
}

func present(c *cli.Context, presenter visualize.Presenter, reqs []*config.Request, results [][]grasp.Candidate) error {
	for i, req := range reqs {
		geom, err := req.ObjectGeometry()
		if err != nil {
			return err
		}
		if err := presenter.Present(c.Context, geom, results[i]); err != nil {
			return errors.Wrapf(err, "visualizing %q", req.Name)
		}
	}
	return nil
}

// ValidateAction is the corresponding action for 'validate'.
func ValidateAction(c *cli.Context) error {
	reqs, err := readRequests(c, loggerFrom(c))
	if err != nil {
		return err
	}
	for _, req := range reqs {
		passes := req.Grasp.Passes
		if len(passes) == 0 {
			passes = grasp.DefaultPasses
		}
		printf(c.App.Writer, "%s is valid: %d pass(es), %d samples each",
			req.Name, len(passes), req.Grasp.AngleResolution+1)
	}
	return nil
}

// SchemaAction is the corresponding action for 'schema'.
func SchemaAction(c *cli.Context) error {
	out, err := jsonIndent(config.Schema())
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", out)
	return nil
}

func requestPaths(c *cli.Context) ([]string, error) {
	paths := c.Args().Slice()
	if path := c.String(generateFlagRequest); path != "" {
		paths = append([]string{path}, paths...)
	}
	if len(paths) == 0 {
		return nil, errors.Errorf("no request files given, use --%s or pass them as arguments", generateFlagRequest)
	}
	return paths, nil
}

func readRequests(c *cli.Context, logger logging.Logger) ([]*config.Request, error) {
	paths, err := requestPaths(c)
	if err != nil {
		return nil, err
	}
	reqs := make([]*config.Request, 0, len(paths))
	for _, path := range paths {
		req, err := config.Read(path, logger)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %q", path)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}
