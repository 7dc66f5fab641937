package aws

import (
	"context"
	"errors"
	"testing"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSNS struct {
	inputs []*sns.PublishInput
	err    error
}

func (f *fakeSNS) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.inputs = append(f.inputs, in)
	return &sns.PublishOutput{}, f.err
}

func TestSNSClient_Publish(t *testing.T) {
	fake := &fakeSNS{}
	c := &SNSClient{client: fake}

	require.NoError(t, c.Publish(context.Background(), "arn:aws:sns:us-east-1:000000000000:cart-events", []byte(`{"a":1}`)))
	require.Len(t, fake.inputs, 1)
	assert.Equal(t, `{"a":1}`, *fake.inputs[0].Message)

	assert.Error(t, c.Publish(context.Background(), "", []byte("x")))

	fake.err = errors.New("throttled")
	assert.ErrorContains(t, c.Publish(context.Background(), "arn", []byte("x")), "throttled")
}

type fakeSecrets struct {
	calls int
	value *string
}

func (f *fakeSecrets) GetSecretValue(_ context.Context, _ *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.calls++
	return &secretsmanager.GetSecretValueOutput{SecretString: f.value}, nil
}

func TestSecretsClient_CachesValue(t *testing.T) {
	fake := &fakeSecrets{value: sdkaws.String("token")}
	c := &SecretsClient{client: fake, cache: map[string]string{}}

	for i := 0; i < 3; i++ {
		v, err := c.GetSecret(context.Background(), "storefront/STORE_API_TOKEN")
		require.NoError(t, err)
		assert.Equal(t, "token", v)
	}
	assert.Equal(t, 1, fake.calls)
}

func TestSecretsClient_NoStringValue(t *testing.T) {
	c := &SecretsClient{client: &fakeSecrets{}, cache: map[string]string{}}
	_, err := c.GetSecret(context.Background(), "binary")
	assert.Error(t, err)
}

type fakeCloudWatch struct {
	inputs []*cloudwatch.PutMetricDataInput
}

func (f *fakeCloudWatch) PutMetricData(_ context.Context, in *cloudwatch.PutMetricDataInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	f.inputs = append(f.inputs, in)
	return &cloudwatch.PutMetricDataOutput{}, nil
}

func TestMetricsClient_DisabledSendsNothing(t *testing.T) {
	fake := &fakeCloudWatch{}
	m := &MetricsClient{client: fake, namespace: "Storefront", enabled: false}

	require.NoError(t, m.RecordCount(context.Background(), MetricHTTPRequests, nil))
	assert.Empty(t, fake.inputs)

	var nilClient *MetricsClient
	assert.False(t, nilClient.IsEnabled())
}

func TestMetricsClient_RecordLatency(t *testing.T) {
	fake := &fakeCloudWatch{}
	m := &MetricsClient{client: fake, namespace: "Storefront", enabled: true}

	require.NoError(t, m.RecordLatency(context.Background(), MetricHTTPLatency, 250*time.Millisecond, map[string]string{"Method": "GET"}))
	require.Len(t, fake.inputs, 1)
	datum := fake.inputs[0].MetricData[0]
	assert.Equal(t, "Storefront", *fake.inputs[0].Namespace)
	assert.Equal(t, float64(250), *datum.Value)
	assert.Len(t, datum.Dimensions, 1)
}

type fakeLogs struct {
	events int
	token  int
}

func (f *fakeLogs) CreateLogGroup(context.Context, *cloudwatchlogs.CreateLogGroupInput, ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogGroupOutput, error) {
	return &cloudwatchlogs.CreateLogGroupOutput{}, nil
}

func (f *fakeLogs) PutRetentionPolicy(context.Context, *cloudwatchlogs.PutRetentionPolicyInput, ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutRetentionPolicyOutput, error) {
	return &cloudwatchlogs.PutRetentionPolicyOutput{}, nil
}

func (f *fakeLogs) CreateLogStream(context.Context, *cloudwatchlogs.CreateLogStreamInput, ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogStreamOutput, error) {
	return &cloudwatchlogs.CreateLogStreamOutput{}, nil
}

func (f *fakeLogs) PutLogEvents(_ context.Context, in *cloudwatchlogs.PutLogEventsInput, _ ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutLogEventsOutput, error) {
	f.events += len(in.LogEvents)
	f.token++
	return &cloudwatchlogs.PutLogEventsOutput{NextSequenceToken: sdkaws.String("t")}, nil
}

func TestCloudWatchLogsClient_Write(t *testing.T) {
	fake := &fakeLogs{}
	c := &CloudWatchLogsClient{client: fake, logGroupName: "/storefront", logStreamName: "storefront-1"}
	require.NoError(t, c.ensureLogGroup(context.Background()))
	require.NoError(t, c.createLogStream(context.Background()))

	n, err := c.Write([]byte("line one\n"))
	require.NoError(t, err)
	assert.Equal(t, 9, n)

	_, _ = c.Write([]byte("line two\n"))
	assert.Equal(t, 2, fake.events)
	assert.Equal(t, "t", *c.sequenceToken)
}
