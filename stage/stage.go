package stage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	apiextensionsclient "k8s.io/apiextensions-apiserver/pkg/client/clientset/clientset"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/perfstage/perfstage/stage/config"
	"github.com/perfstage/perfstage/stage/configmap"
	"github.com/perfstage/perfstage/stage/k6"
)

// Stage archives load-test scripts and publishes them into a single target
// namespace. It carries the clients, tool binding, and configuration the
// subpackages need, plus the caller-side bookkeeping of what was published:
// the archive and publish operations themselves stay stateless, but someone
// has to remember the (namespace, name) pairs so cleanup can retract them.
type Stage struct {
	client       kubernetes.Interface
	apiextClient apiextensionsclient.Interface
	restConfig   *rest.Config
	namespace    string
	ctx          context.Context
	logger       *slog.Logger
	cfg          *config.Config
	tool         k6.Tool

	mu        sync.Mutex
	published []configmap.Result
	archives  []string
}

// Option is a function that configures the Stage
type Option func(*Stage)

// WithLogger sets a custom logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Stage) {
		s.logger = logger
	}
}

// WithConfig sets a custom configuration
func WithConfig(cfg *config.Config) Option {
	return func(s *Stage) {
		s.cfg = cfg
	}
}

// WithTool sets the archiving tool. Tests use this to bind a fake so no k6
// process is spawned.
func WithTool(tool k6.Tool) Option {
	return func(s *Stage) {
		s.tool = tool
	}
}

// WithAPIExtensionsClient sets the client used for CRD prerequisite checks.
func WithAPIExtensionsClient(client apiextensionsclient.Interface) Option {
	return func(s *Stage) {
		s.apiextClient = client
	}
}

// New creates a Stage targeting the given namespace, connecting to the
// cluster via in-cluster config with a kubeconfig fallback. The context is
// used for every subsequent tool invocation and API call; cancel it to stop
// in-flight operations.
func New(ctx context.Context, namespace string, opts ...Option) (*Stage, error) {
	if namespace == "" {
		return nil, ErrNamespaceRequired
	}

	if ctx == nil {
		ctx = context.Background()
	}

	restConfig, err := rest.InClusterConfig()
	if err != nil {
		restConfig, err = clientcmd.BuildConfigFromFlags("", clientcmd.RecommendedHomeFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrClusterConnection, err)
		}
	}

	client, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create kubernetes client: %v", ErrClusterConnection, err)
	}

	apiextClient, err := apiextensionsclient.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create apiextensions client: %v", ErrClusterConnection, err)
	}

	s := &Stage{
		client:       client,
		apiextClient: apiextClient,
		restConfig:   restConfig,
		namespace:    namespace,
		ctx:          ctx,
		logger:       slog.Default(),
		cfg:          config.FromEnv(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.tool == nil {
		s.tool = k6.NewCLITool(s.cfg.K6Binary)
	}

	return s, nil
}

// NewWithClients creates a Stage around an injected Kubernetes client. Used
// by tests to bind in-memory fakes instead of a live cluster.
func NewWithClients(ctx context.Context, namespace string, client kubernetes.Interface, opts ...Option) (*Stage, error) {
	if namespace == "" {
		return nil, ErrNamespaceRequired
	}

	if ctx == nil {
		ctx = context.Background()
	}

	s := &Stage{
		client:    client,
		namespace: namespace,
		ctx:       ctx,
		logger:    slog.Default(),
		cfg:       config.FromEnv(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.tool == nil {
		s.tool = k6.NewCLITool(s.cfg.K6Binary)
	}

	return s, nil
}

// Namespace returns the namespace published resources land in
func (s *Stage) Namespace() string {
	return s.namespace
}

// Client returns the Kubernetes client
func (s *Stage) Client() kubernetes.Interface {
	return s.client
}

// Context returns the context
func (s *Stage) Context() context.Context {
	return s.ctx
}

// Logger returns the logger
func (s *Stage) Logger() *slog.Logger {
	return s.logger
}

// StageConfig returns the stage configuration
func (s *Stage) StageConfig() *config.Config {
	return s.cfg
}

// Tool returns the archiving tool binding
func (s *Stage) Tool() k6.Tool {
	return s.tool
}

// trackPublished records a published ConfigMap for later cleanup
func (s *Stage) trackPublished(result configmap.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.published = append(s.published, result)
}

// untrackPublished forgets a ConfigMap that was retracted explicitly
func (s *Stage) untrackPublished(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.published[:0]
	for _, r := range s.published {
		if r.ConfigMapName != name {
			kept = append(kept, r)
		}
	}
	s.published = kept
}

// trackArchive records a produced archive file for later removal
func (s *Stage) trackArchive(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.archives = append(s.archives, path)
}

// Published returns a copy of the ConfigMaps published through this Stage
// that have not been retracted yet
func (s *Stage) Published() []configmap.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]configmap.Result, len(s.published))
	copy(result, s.published)
	return result
}

// Archives returns a copy of the archive file paths produced through this
// Stage
func (s *Stage) Archives() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]string, len(s.archives))
	copy(result, s.archives)
	return result
}
