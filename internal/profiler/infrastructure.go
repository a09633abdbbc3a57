package profiler

import "strings"

// Infrastructure buckets.
const (
	bucketContainers    = "containers"
	bucketOrchestration = "orchestration"
	bucketCICD          = "ci_cd"
	bucketDeployment    = "deployment_targets"
)

type infraMarker struct {
	Bucket string
	Marker string
}

// infraFileMarkers maps exact file names to infrastructure markers.
var infraFileMarkers = map[string]infraMarker{
	"Dockerfile":          {bucketContainers, "docker"},
	"Containerfile":       {bucketContainers, "docker"},
	".dockerignore":       {bucketContainers, "docker"},
	"docker-compose.yml":  {bucketContainers, "docker-compose"},
	"docker-compose.yaml": {bucketContainers, "docker-compose"},
	"compose.yml":         {bucketContainers, "docker-compose"},
	"compose.yaml":        {bucketContainers, "docker-compose"},
	"podman-compose.yml":  {bucketContainers, "podman"},

	"Chart.yaml":         {bucketOrchestration, "helm"},
	"skaffold.yaml":      {bucketOrchestration, "skaffold"},
	"kustomization.yaml": {bucketOrchestration, "kustomize"},

	".gitlab-ci.yml":      {bucketCICD, "gitlab-ci"},
	"Jenkinsfile":         {bucketCICD, "jenkins"},
	"azure-pipelines.yml": {bucketCICD, "azure-pipelines"},
	".travis.yml":         {bucketCICD, "travis-ci"},
	"cloudbuild.yaml":     {bucketCICD, "cloud-build"},

	"vercel.json":    {bucketDeployment, "vercel"},
	"netlify.toml":   {bucketDeployment, "netlify"},
	"fly.toml":       {bucketDeployment, "fly"},
	"Procfile":       {bucketDeployment, "heroku"},
	"app.yaml":       {bucketDeployment, "gcp-appengine"},
	"serverless.yml": {bucketDeployment, "serverless"},
	"render.yaml":    {bucketDeployment, "render"},
	"amplify.yml":    {bucketDeployment, "aws-amplify"},
}

// infraDirMarkers maps directory names to infrastructure markers.
var infraDirMarkers = map[string]infraMarker{
	"k8s":         {bucketOrchestration, "kubernetes"},
	"kubernetes":  {bucketOrchestration, "kubernetes"},
	"helm":        {bucketOrchestration, "helm"},
	".circleci":   {bucketCICD, "circleci"},
	".vercel":     {bucketDeployment, "vercel"},
	".netlify":    {bucketDeployment, "netlify"},
	".serverless": {bucketDeployment, "serverless"},
}

// terraformProviderMarkers normalizes Terraform provider names to
// deployment-target markers.
var terraformProviderMarkers = map[string]string{
	"aws":          "aws",
	"google":       "gcp",
	"azurerm":      "azure",
	"digitalocean": "digitalocean",
	"heroku":       "heroku",
	"vercel":       "vercel",
}

// infraForFile returns the marker for a file name, if any. Workflow
// files under .github/workflows are handled by path in the walker.
func infraForFile(fileName string) (infraMarker, bool) {
	m, ok := infraFileMarkers[fileName]
	return m, ok
}

// infraForDir returns the marker for a directory name, if any.
func infraForDir(dirName string) (infraMarker, bool) {
	m, ok := infraDirMarkers[dirName]
	return m, ok
}

// isEnvironmentFile reports whether a file is a dotenv-style
// environment marker (.env, .env.local, .env.production, ...).
func isEnvironmentFile(fileName string) bool {
	return fileName == ".env" || strings.HasPrefix(fileName, ".env.")
}

// markerForTerraformProvider maps a Terraform provider to a deployment
// target marker; unknown providers pass through as-is.
func markerForTerraformProvider(provider string) string {
	if marker, ok := terraformProviderMarkers[provider]; ok {
		return marker
	}
	return provider
}
