package stage

import (
	"context"
	"fmt"
	"strings"

	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	apiextensionsclient "k8s.io/apiextensions-apiserver/pkg/client/clientset/clientset"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// RunnerCRDName is the CRD of the execution controller that consumes
// published archives. perfstage never creates these resources; the check
// only tells the user early that nothing would pick the archive up.
const RunnerCRDName = "testruns.k6.io"

// PrerequisiteStatus represents the status of a single prerequisite
type PrerequisiteStatus struct {
	Name    string
	Met     bool
	Message string
}

// PrerequisitesResult contains the results of all prerequisite checks
type PrerequisitesResult struct {
	Tool      PrerequisiteStatus
	RunnerCRD PrerequisiteStatus
	AllMet    bool
}

// String renders the result for user-facing diagnostics
func (r *PrerequisitesResult) String() string {
	var b strings.Builder
	for _, st := range []PrerequisiteStatus{r.Tool, r.RunnerCRD} {
		state := "ok"
		if !st.Met {
			state = "missing"
		}
		fmt.Fprintf(&b, "%s: %s", st.Name, state)
		if st.Message != "" {
			fmt.Fprintf(&b, " (%s)", st.Message)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// CheckPrerequisites verifies the two external collaborators staging depends
// on: the k6 binary and the execution controller's CRD.
func (s *Stage) CheckPrerequisites() (*PrerequisitesResult, error) {
	result := &PrerequisitesResult{AllMet: true}

	result.Tool = s.checkTool()
	if !result.Tool.Met {
		result.AllMet = false
	}

	result.RunnerCRD = checkRunnerCRD(s.ctx, s.apiextClient)
	if !result.RunnerCRD.Met {
		result.AllMet = false
	}

	return result, nil
}

func (s *Stage) checkTool() PrerequisiteStatus {
	status := PrerequisiteStatus{Name: "k6 binary", Met: true}
	if err := s.tool.Probe(s.ctx); err != nil {
		status.Met = false
		status.Message = err.Error()
	}
	return status
}

// checkRunnerCRD verifies the runner CRD exists and is established.
func checkRunnerCRD(ctx context.Context, client apiextensionsclient.Interface) PrerequisiteStatus {
	status := PrerequisiteStatus{Name: "test runner controller"}

	if client == nil {
		status.Message = "apiextensions client not configured"
		return status
	}

	crd, err := client.ApiextensionsV1().CustomResourceDefinitions().Get(ctx, RunnerCRDName, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			status.Message = fmt.Sprintf("CRD %s not found", RunnerCRDName)
		} else {
			status.Message = fmt.Sprintf("failed to check CRD %s: %v", RunnerCRDName, err)
		}
		return status
	}

	for _, cond := range crd.Status.Conditions {
		if cond.Type == apiextensionsv1.Established && cond.Status == apiextensionsv1.ConditionTrue {
			status.Met = true
			return status
		}
	}

	status.Message = fmt.Sprintf("CRD %s is not established", RunnerCRDName)
	return status
}
