package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	commonpb "go.viam.com/api/common/v1"
	"go.viam.com/rdk/spatialmath"
	rdkutils "go.viam.com/rdk/utils"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/mrBelka/block-grasp-generator/config"
	"github.com/mrBelka/block-grasp-generator/grasp"
)

// printf prints a message with no decoration.
func printf(w io.Writer, format string, a ...interface{}) {
	if !strings.HasSuffix(format, "\n") {
		format += "\n"
	}
	fmt.Fprintf(w, format, a...)
}

func candidateTable(reqs []*config.Request, results [][]grasp.Candidate) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Request", "Grasp", "Pass", "Theta", "Quality", "Translation", "Orientation"})
	for i, req := range reqs {
		for _, c := range results[i] {
			pose := c.Pose
			tra := pose.Point()
			ov := pose.Orientation().OrientationVectorDegrees()
			t.AppendRow(table.Row{
				req.Name,
				c.Name(),
				c.Pass.String(),
				fmt.Sprintf("%.1f", rdkutils.RadToDeg(c.Theta)),
				fmt.Sprintf("%.3f", c.Quality),
				fmt.Sprintf("X:%.3f, Y:%.3f, Z:%.3f", tra.X, tra.Y, tra.Z),
				fmt.Sprintf("OX:%.3f, OY:%.3f, OZ:%.3f, Th:%.1f", ov.OX, ov.OY, ov.OZ, ov.Theta),
			})
		}
	}
	return t.Render()
}

func summaryLine(name string, s grasp.Summary) string {
	if s.Count == 0 {
		return fmt.Sprintf("%s: no grasps", name)
	}
	return fmt.Sprintf("%s: %d grasps, best %s (quality %.3f), mean quality %.3f, median %.3f, min %.3f",
		name, s.Count, s.Best.Name(), s.Best.Quality, s.MeanQuality, s.MedianQuality, s.MinQuality)
}

type requestOutput struct {
	Name   string        `json:"name"`
	Frame  string        `json:"frame"`
	Grasps []graspOutput `json:"grasps"`
}

type graspOutput struct {
	ID              string                   `json:"id"`
	Pass            grasp.Pass               `json:"pass"`
	Theta           float64                  `json:"theta"`
	Quality         float64                  `json:"quality"`
	Pose            json.RawMessage          `json:"pose"`
	PreGraspPosture grasp.Posture            `json:"pre_grasp_posture"`
	GraspPosture    grasp.Posture            `json:"grasp_posture"`
	Approach        grasp.GripperTranslation `json:"approach"`
	Retreat         grasp.GripperTranslation `json:"retreat"`
	MaxContactForce float64                  `json:"max_contact_force"`
}

func writeJSON(w io.Writer, reqs []*config.Request, results [][]grasp.Candidate) error {
	out := make([]requestOutput, 0, len(reqs))
	for i, req := range reqs {
		poses := lo.Map(results[i], func(c grasp.Candidate, _ int) *commonpb.Pose {
			return spatialmath.PoseToProtobuf(c.Pose)
		})
		grasps := make([]graspOutput, 0, len(poses))
		for j, c := range results[i] {
			pose, err := protojson.MarshalOptions{EmitUnpopulated: true}.Marshal(poses[j])
			if err != nil {
				return err
			}
			grasps = append(grasps, graspOutput{
				ID:              c.Name(),
				Pass:            c.Pass,
				Theta:           c.Theta,
				Quality:         c.Quality,
				Pose:            pose,
				PreGraspPosture: c.PreGraspPosture,
				GraspPosture:    c.GraspPosture,
				Approach:        c.Approach,
				Retreat:         c.Retreat,
				MaxContactForce: c.MaxContactForce,
			})
		}
		out = append(out, requestOutput{Name: req.Name, Frame: req.Grasp.BaseFrame, Grasps: grasps})
	}
	data, err := jsonIndent(out)
	if err != nil {
		return err
	}
	printf(w, "%s", data)
	return nil
}

func jsonIndent(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
