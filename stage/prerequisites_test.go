package stage

import (
	"context"
	"errors"
	"strings"
	"testing"

	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	apiextensionsfake "k8s.io/apiextensions-apiserver/pkg/client/clientset/clientset/fake"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func runnerCRD(established bool) *apiextensionsv1.CustomResourceDefinition {
	status := apiextensionsv1.ConditionFalse
	if established {
		status = apiextensionsv1.ConditionTrue
	}
	return &apiextensionsv1.CustomResourceDefinition{
		ObjectMeta: metav1.ObjectMeta{Name: RunnerCRDName},
		Status: apiextensionsv1.CustomResourceDefinitionStatus{
			Conditions: []apiextensionsv1.CustomResourceDefinitionCondition{
				{Type: apiextensionsv1.Established, Status: status},
			},
		},
	}
}

func TestCheckRunnerCRD_Established(t *testing.T) {
	client := apiextensionsfake.NewSimpleClientset(runnerCRD(true))

	status := checkRunnerCRD(context.Background(), client)
	if !status.Met {
		t.Errorf("expected established CRD to be met: %+v", status)
	}
}

func TestCheckRunnerCRD_NotEstablished(t *testing.T) {
	client := apiextensionsfake.NewSimpleClientset(runnerCRD(false))

	status := checkRunnerCRD(context.Background(), client)
	if status.Met {
		t.Error("expected unestablished CRD to fail the check")
	}
	if !strings.Contains(status.Message, "not established") {
		t.Errorf("unexpected message %q", status.Message)
	}
}

func TestCheckRunnerCRD_Missing(t *testing.T) {
	client := apiextensionsfake.NewSimpleClientset()

	status := checkRunnerCRD(context.Background(), client)
	if status.Met {
		t.Error("expected missing CRD to fail the check")
	}
	if !strings.Contains(status.Message, "not found") {
		t.Errorf("unexpected message %q", status.Message)
	}
}

func TestCheckPrerequisites(t *testing.T) {
	s, err := NewWithClients(context.Background(), "perf-tests", fake.NewClientset(),
		WithTool(&fakeTool{}),
		WithAPIExtensionsClient(apiextensionsfake.NewSimpleClientset(runnerCRD(true))),
	)
	if err != nil {
		t.Fatalf("failed to create stage: %v", err)
	}

	result, err := s.CheckPrerequisites()
	if err != nil {
		t.Fatalf("CheckPrerequisites failed: %v", err)
	}
	if !result.AllMet {
		t.Errorf("expected all prerequisites met:\n%s", result.String())
	}
}

func TestCheckPrerequisites_ToolMissing(t *testing.T) {
	s, err := NewWithClients(context.Background(), "perf-tests", fake.NewClientset(),
		WithTool(&fakeTool{probeErr: errors.New("k6 not found in PATH")}),
		WithAPIExtensionsClient(apiextensionsfake.NewSimpleClientset(runnerCRD(true))),
	)
	if err != nil {
		t.Fatalf("failed to create stage: %v", err)
	}

	result, err := s.CheckPrerequisites()
	if err != nil {
		t.Fatalf("CheckPrerequisites failed: %v", err)
	}
	if result.AllMet {
		t.Error("expected missing tool to fail prerequisites")
	}
	if result.Tool.Met {
		t.Error("tool status should not be met")
	}
	if !strings.Contains(result.String(), "missing") {
		t.Errorf("String() should flag the missing tool:\n%s", result.String())
	}
}
